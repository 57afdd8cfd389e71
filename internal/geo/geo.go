// Package geo считает расстояние между пользователем и компанией.
package geo

import "math"

const (
	earthRadiusKm = 6371.0

	// Поправка на то, что путь по городу длиннее прямой между точками
	// лишь условно: исторически расстояние показывается с этим
	// коэффициентом и сортировка компаний использует его же.
	correctionFactor = 0.8
)

// Distance - расстояние по дуге большого круга в километрах.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// CompanyDistance - скорректированное расстояние до компании,
// округлённое до сотых. Именно это значение видит пользователь в
// списке и по нему идёт сортировка "рядом".
func CompanyDistance(lon1, lat1, lon2, lat2 float64) float64 {
	return math.Round(Distance(lon1, lat1, lon2, lat2)*correctionFactor*100) / 100
}
