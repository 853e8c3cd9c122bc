package create_reservation

import "time"

// Request модель запроса на создание бронирования.
// Поля приходят строками как есть, валидация и разбор выполняются в use case
type Request struct {
	ClientName string // Имя клиента
	Phone      string // Телефон
	Service    string // Услуга
	Date       string // Дата в формате YYYY-MM-DD
	Time       string // Время начала слота в формате HH:MM
	Note       string // Комментарий (опционально)
}

// Options настройки бронирования
type Options struct {
	Location   *time.Location // Таймзона заведения
	RejectPast bool           // Отклонять слоты в прошлом
	MinNotice  time.Duration  // Минимальный срок до начала слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ClientName  string
	Phone       string
	Service     string
	ScheduledAt time.Time // Дата и время слота в таймзоне заведения
	Note        *string
	CreatedAt   time.Time
}
