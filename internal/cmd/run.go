package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/internal/ctl"
	"github.com/mhuth/fnkeyd/internal/ctl/handler"
	"github.com/mhuth/fnkeyd/internal/log"
	"github.com/mhuth/fnkeyd/internal/notify"
	"github.com/mhuth/fnkeyd/keymap"
	"github.com/mhuth/fnkeyd/sink"
)

// Run is the daemon command: register the virtual input device, then
// translate firmware scancodes until interrupted.
type Run struct {
	Model       string `help:"Hardware model to load the keymap for; 'auto' detects via DMI" default:"auto" env:"FNKEYD_MODEL"`
	DeviceName  string `help:"Name the virtual input device registers under" default:"Ideapad WMI Fn Keys" env:"FNKEYD_DEVICE_NAME"`
	AcpidSocket string `help:"Path of the acpid event socket" default:"/var/run/acpid.socket" env:"FNKEYD_ACPID_SOCKET"`
	EventClass  string `help:"ACPI event class prefix to match" default:"wmi" env:"FNKEYD_EVENT_CLASS"`
	CtlSocket   string `help:"Control socket path" default:"/run/fnkeyd.sock" env:"FNKEYD_CTL_SOCKET"`
	DmiProduct  string `help:"Sysfs path of the DMI product name" default:"/sys/class/dmi/id/product_name" env:"FNKEYD_DMI_PRODUCT"`
	DryRun      bool   `help:"Record key events in-process instead of registering a uinput device" env:"FNKEYD_DRY_RUN"`
}

// Run is called by kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.StartDaemon(ctx, logger, rawLogger)
}

// event pairs a payload with an optional reply channel for injections.
type event struct {
	payload notify.Payload
	reply   chan dispatch.Outcome
}

// StartDaemon wires table selection, sink registration, the control server
// and the notification source together, then serializes all deliveries
// through a single loop. The dispatcher is not reentrant-safe; this loop is
// the only caller.
func (r *Run) StartDaemon(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	table, err := r.selectTable(logger)
	if err != nil {
		return err
	}

	var registry sink.Registry
	if r.DryRun {
		logger.Info("dry run: key events will not reach the kernel")
		registry = &sink.MemoryRegistry{Logger: logger}
	} else {
		registry = sink.NewUinputRegistry()
	}

	dispatcher, err := dispatch.New(registry, r.DeviceName, table, logger)
	if err != nil {
		// Initialization failure is permanent for this attempt; the
		// service manager may restart us later.
		return fmt.Errorf("initializing dispatcher: %w", err)
	}

	listener := notify.NewListener(dispatcher, logger, rawLogger)
	events := make(chan event, 32)

	injectFn := func(scancode uint64) dispatch.Outcome {
		reply := make(chan dispatch.Outcome, 1)
		select {
		case events <- event{payload: notify.IntegerPayload("inject", scancode), reply: reply}:
			select {
			case outcome := <-reply:
				return outcome
			case <-ctx.Done():
				return dispatch.OutcomeIgnored
			}
		case <-ctx.Done():
			return dispatch.OutcomeIgnored
		}
	}

	ctlSrv := ctl.New(r.CtlSocket, logger)
	router := ctlSrv.Router()
	router.Register("ping", handler.Ping("fnkeyd", Version))
	router.Register("status", handler.Status(dispatcher, r.DeviceName))
	router.Register("keymap", handler.Keymap(table))
	router.Register("inject", handler.Inject(injectFn))
	if err := ctlSrv.Start(); err != nil {
		_ = dispatcher.Close()
		return err
	}

	source := &notify.AcpidSource{
		SocketPath: r.AcpidSocket,
		EventClass: r.EventClass,
		Logger:     logger,
	}
	srcErr := make(chan error, 1)
	go func() {
		srcErr <- source.Run(ctx, func(p notify.Payload) {
			select {
			case events <- event{payload: p}:
			case <-ctx.Done():
			}
		})
	}()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err := <-srcErr:
			if ctx.Err() == nil {
				runErr = err
			}
			break loop
		case ev := <-events:
			outcome := listener.Notify(ev.payload)
			if ev.reply != nil {
				ev.reply <- outcome
			}
		}
	}

	ctlSrv.Close()
	if err := dispatcher.Close(); err != nil {
		logger.Error("releasing input device", "error", err)
	}
	logger.Info("fnkeyd stopped")
	return runErr
}

func (r *Run) selectTable(logger *slog.Logger) (*keymap.Table, error) {
	if r.Model != "auto" {
		return keymap.ForModel(r.Model)
	}
	product, err := notify.ReadProductName(r.DmiProduct)
	if err != nil {
		return nil, err
	}
	table, ok := keymap.Detect(product)
	if !ok {
		return nil, fmt.Errorf("unsupported hardware %q; pass --model explicitly", product)
	}
	logger.Info("detected hardware", "product", product, "model", table.Model())
	return table, nil
}
