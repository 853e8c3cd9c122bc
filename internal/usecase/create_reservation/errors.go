package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при пустых или некорректных полях запроса
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом слота сетки
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotInPast возвращается, когда слот уже начался или начнется раньше минимального срока записи
	ErrSlotInPast = errors.New("create_reservation: slot is in the past")

	// ErrSlotNotAvailable возвращается, когда на это дату и время уже есть бронирование
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrStorage возвращается при ошибке хранилища; ничего не записано
	ErrStorage = errors.New("create_reservation: storage failure")
)
