package out

// Messages: локализованные тексты интерфейса
type Messages interface {
	Text(id string, data map[string]any) string
	Plural(id string, count int, data map[string]any) string
}
