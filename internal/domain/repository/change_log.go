package repository

// ChangeLogger registro legible de cambios (una línea por evento, por tema).
// Quien llama no reintenta: el error solo se informa.
type ChangeLogger interface {
	Append(topic, message string) error
}
