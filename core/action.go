package core

import (
	"fmt"
	"strings"
)

// ActionType proposal action type
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeTransfer transfer funds out of the vault
	ActionTypeTransfer
	// ActionTypeInvite add a signer to the vault
	ActionTypeInvite
)

var actionTypeNames = map[ActionType]string{
	ActionTypeTransfer: "transfer",
	ActionTypeInvite:   "invite",
}

func (a ActionType) String() string {
	if name, ok := actionTypeNames[a]; ok {
		return name
	}

	return fmt.Sprintf("action(%d)", int(a))
}

// IsValid is valid
func (a ActionType) IsValid() bool {
	_, ok := actionTypeNames[a]
	return ok
}

// ParseActionType parse action type from its name
func ParseActionType(s string) (ActionType, error) {
	for a, name := range actionTypeNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}

	return 0, fmt.Errorf("unknown action %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ActionType) UnmarshalText(text []byte) error {
	v, err := ParseActionType(string(text))
	if err != nil {
		return err
	}

	*a = v
	return nil
}

// TransferAction moves Amount minor units to Recipient
type TransferAction struct {
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// InviteAction adds Principal to the signers
type InviteAction struct {
	Principal string `json:"principal"`
	Name      string `json:"name,omitempty"`
}
