// Package callback кодирует состояние навигации в callback-данные
// инлайн-кнопок. Токен - единственное место, где живёт состояние
// экрана: серверной сессии у бота нет.
package callback

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Separator разделяет команду и пары ключ=значение.
	Separator = ";"

	// MaxLength - лимит телеграма на callback-данные кнопки.
	MaxLength = 64
)

// Ключи с этими суффиксами при декодировании приводятся к int.
var intSuffixes = []string{"id", "page", "pg"}

// Params - параметры токена. Значения либо int (ключи-идентификаторы
// и номера страниц), либо string.
type Params map[string]interface{}

// Int возвращает параметр-число или значение по умолчанию.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key].(int); ok {
		return v
	}
	return def
}

// Str возвращает строковый параметр или значение по умолчанию.
func (p Params) Str(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Merge возвращает копию p с добавленными парами из other.
// Совпадающие ключи перекрываются значениями из other.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Encode собирает токен вида "command;k=v;k=v". Ключи сортируются,
// чтобы токен был воспроизводим. Превышение MaxLength - ошибка
// вызывающего: параметров должно быть мало и они короткие.
func Encode(command string, params Params) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(command)
	for _, k := range keys {
		b.WriteString(Separator)
		b.WriteString(k)
		b.WriteByte('=')
		fmt.Fprintf(&b, "%v", params[k])
	}

	token := b.String()
	if len(token) > MaxLength {
		return "", fmt.Errorf("callback-токен %q длиннее %d байт", token, MaxLength)
	}
	return token, nil
}

// Decode разбирает токен на команду и параметры. Сегменты без "=" молча
// отбрасываются. Ключи с числовым суффиксом обязаны нести число:
// нечисловое значение - ошибка протокола, о ней сообщаем громко.
// При повторе ключа побеждает последнее вхождение.
func Decode(token string) (string, Params, error) {
	segments := strings.Split(token, Separator)
	command := segments[0]
	params := make(Params)
	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}
		kv := strings.SplitN(segment, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, value := kv[0], kv[1]
		if hasIntSuffix(key) {
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", nil, fmt.Errorf("параметр %q токена %q должен быть числом: %w", key, token, err)
			}
			params[key] = n
			continue
		}
		params[key] = value
	}
	return command, params, nil
}

func hasIntSuffix(key string) bool {
	for _, suffix := range intSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}
