package clock

import "github.com/google/uuid"

func RequestID() string {
	return uuid.NewString()
}
