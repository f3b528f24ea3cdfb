package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"mbdiscid/internal/logging"
)

// Handler is invoked with the device path after a disc insertion.
type Handler func(ctx context.Context, device string)

// Monitor listens for udev netlink events and triggers the handler when a
// disc is inserted into its device.
type Monitor struct {
	device   string
	aliases  map[string]struct{}
	logger   *slog.Logger
	handler  Handler
	debounce time.Duration
	now      func() time.Time

	mu          sync.Mutex
	conn        *netlink.UEventConn
	quit        chan struct{}
	running     bool
	lastHandled time.Time
}

// NewMonitor creates a monitor for device. Symlinks such as /dev/cdrom are
// resolved so events naming the underlying node also match. Events arriving
// within debounce of the previous handled insertion are ignored.
func NewMonitor(device string, logger *slog.Logger, handler Handler, debounce time.Duration) *Monitor {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil
	}

	aliases := map[string]struct{}{device: {}}
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		aliases[resolved] = struct{}{}
	}

	return &Monitor{
		device:   device,
		aliases:  aliases,
		logger:   logging.NewComponentLogger(logger, "watch"),
		handler:  handler,
		debounce: debounce,
		now:      time.Now,
	}
}

// Start connects to the udev netlink socket and begins listening.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return fmt.Errorf("watch: no device configured")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return fmt.Errorf("connect to udev netlink socket: %w", err)
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, conn, quit)

	m.logger.Info("watching for disc insertions",
		logging.String(logging.FieldEventType, "watch_started"),
		logging.String(logging.FieldDevice, m.device),
	)
	return nil
}

// Stop shuts down the monitor. It is safe to call more than once.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}

	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}

	m.running = false

	m.logger.Info("watch stopped",
		logging.String(logging.FieldEventType, "watch_stopped"),
	)
}

func (m *Monitor) monitorLoop(ctx context.Context, conn *netlink.UEventConn, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			logging.WarnWithContext(m.logger, "netlink monitor error", "watch_netlink_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "disc insertions may be missed"),
			)
		}
	}
}

// buildMatcher matches SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1 with
// ACTION=change|add.
func (m *Monitor) buildMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" {
		m.logger.Debug("ignoring event without device name",
			logging.String("action", string(uevent.Action)),
			logging.String("kobj", uevent.KObj),
		)
		return
	}

	if _, ok := m.aliases[devname]; !ok {
		m.logger.Debug("ignoring event for other device",
			logging.String(logging.FieldDevice, devname),
			logging.String("watched_device", m.device),
		)
		return
	}

	now := m.now()
	if !m.lastHandled.IsZero() && now.Sub(m.lastHandled) < m.debounce {
		m.logger.Debug("ignoring repeated media event",
			logging.String(logging.FieldDevice, devname),
			logging.String("action", string(uevent.Action)),
		)
		return
	}
	m.lastHandled = now

	m.logger.Info("disc inserted",
		logging.String(logging.FieldEventType, "disc_inserted"),
		logging.String(logging.FieldDevice, m.device),
		logging.String("action", string(uevent.Action)),
	)

	if m.debounce > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.debounce):
		}
	}

	if m.handler != nil {
		m.handler(ctx, m.device)
	}
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		if !strings.HasPrefix(devname, "/") {
			devname = "/dev/" + devname
		}
		return devname
	}

	// Fall back to DEVPATH (e.g., /devices/pci.../block/sr0).
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}

	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
