package services

import "errors"

var (
	// ErrUnknownSpecialCondition means content references a special condition nobody registered.
	ErrUnknownSpecialCondition = errors.New("unknown special condition")

	// ErrUnknownSpecialAction means content references a special action nobody registered.
	ErrUnknownSpecialAction = errors.New("unknown special action")

	// ErrInvalidOperator means a comparison uses an unsupported operator.
	ErrInvalidOperator = errors.New("invalid comparison operator")

	// ErrInvalidCondition means a condition has several variants set.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrCharacterNotFound means a character ID or name matched nothing.
	ErrCharacterNotFound = errors.New("character not found")

	// ErrOptionNotFound means a dialogue option or exploration action name matched nothing.
	ErrOptionNotFound = errors.New("option not found")
)
