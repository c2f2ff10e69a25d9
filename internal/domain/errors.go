package domain

import "errors"

var (
	errEmptyBotName = errors.New("bot name is required")
	errEmptyBotType = errors.New("bot category is required")
)
