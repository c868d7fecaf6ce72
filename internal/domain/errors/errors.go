package errors

import (
	"fmt"
)

type ErrMissingCredential struct{}

func (e *ErrMissingCredential) Error() string {
	return "no credential: Telegram bot token not configured. " +
		"Set it in Settings or in the TELEGRAM_BOT_TOKEN environment variable."
}

func (e *ErrMissingCredential) Is(target error) bool {
	_, ok := target.(*ErrMissingCredential)
	return ok
}

type ErrInvalidCredential struct {
	Reason string
	Cause  error
}

func (e *ErrInvalidCredential) Error() string {
	return "invalid credential: " + e.Reason
}

func (e *ErrInvalidCredential) Unwrap() error {
	return e.Cause
}

func (e *ErrInvalidCredential) Is(target error) bool {
	_, ok := target.(*ErrInvalidCredential)
	return ok
}

type ErrHackathonNotFound struct {
	ID string
}

func (e *ErrHackathonNotFound) Error() string {
	return "hackathon not found: " + e.ID
}

func (e *ErrHackathonNotFound) Is(target error) bool {
	_, ok := target.(*ErrHackathonNotFound)
	return ok
}

type ErrMemberNotFound struct {
	ID string
}

func (e *ErrMemberNotFound) Error() string {
	return "member not found: " + e.ID
}

func (e *ErrMemberNotFound) Is(target error) bool {
	_, ok := target.(*ErrMemberNotFound)
	return ok
}

type ErrNoChatAddress struct {
	MemberName string
}

func (e *ErrNoChatAddress) Error() string {
	return fmt.Sprintf("%s has no Telegram Chat ID configured. Please add their Chat ID first.", e.MemberName)
}

type ErrNoReachableMembers struct{}

func (e *ErrNoReachableMembers) Error() string {
	return "No members have Telegram Chat IDs configured. Add Chat IDs in Settings → Team Members."
}

type ErrDeliveryFailed struct {
	MemberName string
	Reason     string
}

func (e *ErrDeliveryFailed) Error() string {
	return fmt.Sprintf("❌ Failed to send to %s: %s", e.MemberName, e.Reason)
}

type ErrInvalidValue struct {
	FieldName string
	Value     string
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value '%s' for field '%s'", e.Value, e.FieldName)
}

func (e *ErrInvalidValue) Is(target error) bool {
	_, ok := target.(*ErrInvalidValue)
	return ok
}

type ErrMissingRequiredField struct {
	FieldName string
}

func (e *ErrMissingRequiredField) Error() string {
	return fmt.Sprintf("missing required field: %s", e.FieldName)
}

type ErrUnknownAction struct {
	Action string
}

func (e *ErrUnknownAction) Error() string {
	return "Invalid action. Use verify-token, test-member, or test-all."
}

type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %s", e.Message)
}

type ErrUnknownStorageBackend struct {
	Backend string
}

func (e *ErrUnknownStorageBackend) Error() string {
	return fmt.Sprintf("неизвестный тип хранилища: %s", e.Backend)
}

type ErrConcurrentUpdate struct {
	Key string
}

func (e *ErrConcurrentUpdate) Error() string {
	return fmt.Sprintf("не удалось обновить коллекцию %s: слишком много конкурентных изменений", e.Key)
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
