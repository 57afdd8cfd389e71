package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeDecodeRoundTrip проверяет, что закодированный токен
// декодируется в ту же команду и параметры с сохранением типов.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	params := Params{
		"cid":   7,
		"page":  3,
		"ct_pg": 2,
		"st":    "open",
	}

	token, err := Encode("iid", params)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(token), MaxLength)

	command, decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "iid", command)
	assert.Equal(t, 7, decoded.Int("cid", 0))
	assert.Equal(t, 3, decoded.Int("page", 0))
	assert.Equal(t, 2, decoded.Int("ct_pg", 0))
	assert.Equal(t, "open", decoded.Str("st", ""))
}

func TestEncodeDeterministicOrder(t *testing.T) {
	params := Params{"cid": 1, "page": 2, "mark": "5"}
	first, err := Encode("gr-com", params)
	require.NoError(t, err)
	second, err := Encode("gr-com", params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "gr-com;cid=1;mark=5;page=2", first)
}

func TestDecodeBareCommand(t *testing.T) {
	command, params, err := Decode("pfid")
	require.NoError(t, err)
	assert.Equal(t, "pfid", command)
	assert.Empty(t, params)
}

// TestDecodeMalformedSegments - сегменты без "=" и пустые сегменты
// отбрасываются молча, остальные параметры разбираются.
func TestDecodeMalformedSegments(t *testing.T) {
	command, params, err := Decode("did;junk;;id=4")
	require.NoError(t, err)
	assert.Equal(t, "did", command)
	assert.Equal(t, 4, params.Int("id", 0))
	assert.Len(t, params, 1)
}

// TestDecodeDuplicateKey - при повторе ключа побеждает последнее
// вхождение.
func TestDecodeDuplicateKey(t *testing.T) {
	_, params, err := Decode("iid;page=1;page=5")
	require.NoError(t, err)
	assert.Equal(t, 5, params.Int("page", 0))
}

// TestDecodeBadIntValue - нечисловое значение у ключа с числовым
// суффиксом - громкая ошибка, а не тихий пропуск.
func TestDecodeBadIntValue(t *testing.T) {
	_, _, err := Decode("did;id=abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestDecodeIntSuffixes(t *testing.T) {
	_, params, err := Decode("x;company_id=10;s_pg=2;page=1;status=3")
	require.NoError(t, err)
	assert.Equal(t, 10, params.Int("company_id", 0))
	assert.Equal(t, 2, params.Int("s_pg", 0))
	assert.Equal(t, 1, params.Int("page", 0))
	// status не оканчивается числовым суффиксом и остаётся строкой
	assert.Equal(t, "3", params.Str("status", ""))
}

func TestEncodeTooLong(t *testing.T) {
	_, err := Encode("iid", Params{
		"very_long_key_one": "very_long_value_one",
		"very_long_key_two": "very_long_value_two",
	})
	require.Error(t, err)
}

func TestParamsMerge(t *testing.T) {
	base := Params{"id": 1, "st": "a"}
	merged := base.Merge(Params{"st": "b", "page": 2})

	assert.Equal(t, "b", merged.Str("st", ""))
	assert.Equal(t, 1, merged.Int("id", 0))
	assert.Equal(t, 2, merged.Int("page", 0))
	// исходные параметры не тронуты
	assert.Equal(t, "a", base.Str("st", ""))
}
