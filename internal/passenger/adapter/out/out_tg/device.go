package out_tg

import (
	"fmt"
	"strconv"
	"strings"
)

const devicePrefix = "tg-"

// DeviceID: устройство Telegram-чата
func DeviceID(chatID int64) string {
	return devicePrefix + strconv.FormatInt(chatID, 10)
}

// ChatID извлекает id чата; ok=false для устройств других каналов
func ChatID(deviceID string) (int64, bool) {
	if !strings.HasPrefix(deviceID, devicePrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(deviceID, devicePrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// CallbackData: данные кнопки: lg|<action>|<value>
const CallbackPrefix = "lg|"

func CallbackData(action, value string) string {
	return fmt.Sprintf("%s%s|%s", CallbackPrefix, action, value)
}

// ParseCallback: обратная операция к CallbackData
func ParseCallback(data string) (action, value string, ok bool) {
	rest, found := strings.CutPrefix(data, CallbackPrefix)
	if !found {
		return "", "", false
	}
	action, value, _ = strings.Cut(rest, "|")
	return action, value, action != ""
}
