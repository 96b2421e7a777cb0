//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=session_state_test
package session_state

import "courier-agent/internal/entities"

type Controller interface {
	State() entities.SessionState
}
