package views

// Ack reply of commands without a resource to return
type Ack struct {
	OK bool `json:"ok"`
}

var Done = Ack{OK: true}
