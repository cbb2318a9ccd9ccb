package apperrors

import "github.com/pkg/errors"

// Ошибки уровня бизнес-логики, контроллеры сопоставляют их HTTP статусам.
var (
	// ErrNotFound - запись не существует, удалена или скрыта от пользователя.
	ErrNotFound = errors.New("запись не найдена")
	// ErrForbidden - запись видна, но действие пользователю не разрешено.
	ErrForbidden = errors.New("действие не разрешено")
	// ErrConflict - состояние записи изменилось параллельным запросом.
	ErrConflict = errors.New("запись уже обработана")
)
