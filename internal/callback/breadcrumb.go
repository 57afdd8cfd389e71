package callback

// Ключи обратных ссылок в токенах. По ним экран восстанавливает
// предыдущие страницы списков без серверного состояния.
const (
	KeyCategoryPage = "ct_pg"
	KeyCompanyPage  = "cp_pg"
	KeyServicePage  = "s_pg"
)

// Breadcrumb - цепочка обратных ссылок, протянутая через токены:
// страница списка категорий, страница списка компаний и страница
// списка услуг, с которых пользователь пришёл на текущий экран.
// Нулевое поле означает "не задано" и в токен не попадает.
type Breadcrumb struct {
	CategoryPage int
	CompanyPage  int
	ServicePage  int
}

// BreadcrumbFrom вычитывает обратные ссылки из параметров токена.
func BreadcrumbFrom(p Params) Breadcrumb {
	return Breadcrumb{
		CategoryPage: p.Int(KeyCategoryPage, 0),
		CompanyPage:  p.Int(KeyCompanyPage, 0),
		ServicePage:  p.Int(KeyServicePage, 0),
	}
}

// Params раскладывает заданные поля цепочки обратно в параметры.
func (b Breadcrumb) Params() Params {
	p := make(Params, 3)
	if b.CategoryPage > 0 {
		p[KeyCategoryPage] = b.CategoryPage
	}
	if b.CompanyPage > 0 {
		p[KeyCompanyPage] = b.CompanyPage
	}
	if b.ServicePage > 0 {
		p[KeyServicePage] = b.ServicePage
	}
	return p
}

// CategoryPageOr возвращает страницу категорий или значение по умолчанию.
func (b Breadcrumb) CategoryPageOr(def int) int {
	if b.CategoryPage > 0 {
		return b.CategoryPage
	}
	return def
}

// CompanyPageOr возвращает страницу компаний или значение по умолчанию.
func (b Breadcrumb) CompanyPageOr(def int) int {
	if b.CompanyPage > 0 {
		return b.CompanyPage
	}
	return def
}

// ServicePageOr возвращает страницу услуг или значение по умолчанию.
func (b Breadcrumb) ServicePageOr(def int) int {
	if b.ServicePage > 0 {
		return b.ServicePage
	}
	return def
}
