package protocol

// RackLink command codes (I-00472 series protocol manual)
const (
	CmdPing         = 0x01
	CmdLogin        = 0x02
	CmdNack         = 0x10
	CmdPowerOutlets = 0x20
	CmdOutletName   = 0x21
	CmdOutletCount  = 0x22
	CmdEPO          = 0x37
)

// Subcommand codes
const (
	SubSet      = 0x01
	SubGet      = 0x02
	SubResponse = 0x10
)

// Open command ranges: the family is known, the specific member is not
// individually named.
const (
	SensorFirst    = 0x50
	SensorLast     = 0x61
	ThresholdFirst = 0x70
	ThresholdLast  = 0x77
)

// Registry resolves command and subcommand codes to symbolic names.
// Lookups never fail: unknown codes resolve to fallback labels so the
// decoder stays usable on malformed or forward-incompatible traffic.
type Registry struct {
	commands    map[byte]string
	subcommands map[byte]string
}

// NewRegistry builds a registry with the protocol manual's name tables.
func NewRegistry() *Registry {
	return &Registry{
		commands: map[byte]string{
			CmdPing:         "Ping",
			CmdLogin:        "Login",
			CmdNack:         "NACK",
			CmdPowerOutlets: "Power Outlets",
			CmdOutletName:   "Outlet Name",
			CmdOutletCount:  "Outlet Count",
			CmdEPO:          "Emergency Power Off",
		},
		subcommands: map[byte]string{
			SubSet:      "SET",
			SubGet:      "GET",
			SubResponse: "RESPONSE",
		},
	}
}

// defaultRegistry is built once at startup and never mutated.
var defaultRegistry = NewRegistry()

// CommandName returns the name for a command code.
func (r *Registry) CommandName(code byte) string {
	if name, ok := r.commands[code]; ok {
		return name
	}
	switch {
	case code >= SensorFirst && code <= SensorLast:
		return "Sensor Value"
	case code >= ThresholdFirst && code <= ThresholdLast:
		return "Sensor Threshold"
	}
	return "Unknown Command"
}

// SubcommandName returns the name for a subcommand code. Bytes in the
// subcommand position that are not GET/SET/RESPONSE are plain parameter
// data, so the fallback reflects that rather than flagging an error.
func (r *Registry) SubcommandName(code byte) string {
	if name, ok := r.subcommands[code]; ok {
		return name
	}
	return "Param/Data"
}

// CommandName resolves code against the default registry.
func CommandName(code byte) string {
	return defaultRegistry.CommandName(code)
}

// SubcommandName resolves code against the default registry.
func SubcommandName(code byte) string {
	return defaultRegistry.SubcommandName(code)
}
