package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewUUID генерирует новый UUID v4
func NewUUID() string {
	return uuid.New().String()
}

// NewBookingNumber возвращает короткий номер заказа: LG + 6 последних цифр времени в мс
func NewBookingNumber(now time.Time) string {
	return fmt.Sprintf("LG%06d", now.UnixMilli()%1_000_000)
}
