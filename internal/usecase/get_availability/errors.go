package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствующей или некорректной дате
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrStorage возвращается, когда не удалось прочитать бронирования из хранилища
	ErrStorage = errors.New("get_availability: storage failure")
)
