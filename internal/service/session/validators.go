package session

import "strings"

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidAddress(address string) bool {
	return strings.TrimSpace(address) != ""
}

// normalizePhone: пустой телефон равносилен отсутствующему.
func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
