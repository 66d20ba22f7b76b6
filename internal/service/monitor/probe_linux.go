//go:build linux

package monitor

import (
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
)

// x11Probe queries the X11 screensaver extension for the idle time,
// which resets on every keyboard or mouse event.
type x11Probe struct {
	conn *xgb.Conn
	root xproto.Drawable
}

// NewProbe connects to the X server and initializes the screensaver
// extension. It fails when no display is reachable (e.g. pure Wayland or a
// headless session), in which case the monitor degrades to never reporting
// activity.
func NewProbe() (Probe, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	if err = screensaver.Init(conn); err != nil {
		conn.Close()

		return nil, fmt.Errorf("init screensaver extension: %w", err)
	}

	setup := xproto.Setup(conn)
	root := xproto.Drawable(setup.DefaultScreen(conn).Root)

	return &x11Probe{
		conn: conn,
		root: root,
	}, nil
}

// IdleFor returns the milliseconds-since-input counter maintained by the
// X server.
func (p *x11Probe) IdleFor() (time.Duration, error) {
	reply, err := screensaver.QueryInfo(p.conn, p.root).Reply()
	if err != nil {
		return 0, fmt.Errorf("query screensaver info: %w", err)
	}

	return time.Duration(reply.MsSinceUserInput) * time.Millisecond, nil
}

// Close terminates the X connection.
func (p *x11Probe) Close() error {
	p.conn.Close()

	return nil
}
