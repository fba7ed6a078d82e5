package admissionsclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoData возвращается Decode, когда в конверте нет данных
var ErrNoData = errors.New("admissions client: envelope has no data")

// Envelope ответ API {success, data?, message?, error?}
// Сетевые ошибки и ответы не из 2xx тоже приходят конвертом с Success=false
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	StatusCode int             `json:"-"` // 0, если ответа не было
}

// Decode разбирает Data в v
func (e Envelope) Decode(v interface{}) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return ErrNoData
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("admissions client: decode data: %w", err)
	}
	return nil
}

func failure(status int, format string, v ...interface{}) Envelope {
	return Envelope{Success: false, Error: fmt.Sprintf(format, v...), StatusCode: status}
}
