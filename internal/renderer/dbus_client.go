package renderer

import (
	"github.com/godbus/dbus/v5"
)

const busInterface = "org.freedesktop.DBus"

// DBusClient is the slice of a session bus connection that MprisEngine
// drives. Tests substitute the generated mock.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/castshell/internal/renderer DBusClient
type DBusClient interface {
	Close() error

	// AddMatchSignal asks the bus daemon to route matching signals here
	AddMatchSignal(options ...dbus.MatchOption) error

	// Signal delivers routed signals on ch
	Signal(ch chan<- *dbus.Signal)

	// ListNames lists the well-known and unique names on the bus
	ListNames() ([]string, error)

	// GetNameOwner resolves a player's well-known name (org.mpris.MediaPlayer2.vlc)
	// to the unique connection name behind it, used to tell restarts apart
	GetNameOwner(name string) (string, error)

	// GetProperty reads prop ("interface.Name") from the object at path on player
	GetProperty(player, path, prop string) (dbus.Variant, error)

	// Call runs a transport method such as org.mpris.MediaPlayer2.Player.Play
	// and returns the remote error, if any
	Call(player, path, method string, args ...interface{}) error
}

// SessionBusClient talks to players over the user's session bus
type SessionBusClient struct {
	conn *dbus.Conn
}

// NewSessionBusClient connects to the session bus. It fails on headless
// hosts where DBUS_SESSION_BUS_ADDRESS is not set.
func NewSessionBusClient() (*SessionBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionBusClient{conn: conn}, nil
}

func (c *SessionBusClient) Close() error {
	return c.conn.Close()
}

func (c *SessionBusClient) AddMatchSignal(options ...dbus.MatchOption) error {
	return c.conn.AddMatchSignal(options...)
}

func (c *SessionBusClient) Signal(ch chan<- *dbus.Signal) {
	c.conn.Signal(ch)
}

func (c *SessionBusClient) ListNames() ([]string, error) {
	var names []string
	err := c.conn.BusObject().Call(busInterface+".ListNames", 0).Store(&names)
	return names, err
}

func (c *SessionBusClient) GetNameOwner(name string) (string, error) {
	var owner string
	err := c.conn.BusObject().Call(busInterface+".GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

func (c *SessionBusClient) GetProperty(player, path, prop string) (dbus.Variant, error) {
	return c.player(player, path).GetProperty(prop)
}

func (c *SessionBusClient) Call(player, path, method string, args ...interface{}) error {
	return c.player(player, path).Call(method, 0, args...).Err
}

func (c *SessionBusClient) player(name, path string) dbus.BusObject {
	return c.conn.Object(name, dbus.ObjectPath(path))
}
