package reservations

import "errors"

var (
	// ErrStorage возвращается при ошибке чтения из хранилища
	ErrStorage = errors.New("reservations.service: storage failure")
)
