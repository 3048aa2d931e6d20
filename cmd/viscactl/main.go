package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fortunto2/visca-tcp/internal/config"
	"github.com/fortunto2/visca-tcp/internal/visca"
)

func main() {
	logLevel := parseLogLevel(envStr("VISCACTL_LOG_LEVEL", "info"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	host := flag.String("host", "", "camera host or IP")
	port := flag.Int("port", 0, "camera TCP port")
	serialDev := flag.String("serial", "", "serial device (overrides TCP transport)")
	baud := flag.Int("baud", 0, "serial baud rate")
	timeoutSec := flag.Float64("timeout", 0, "reply timeout in seconds")
	flag.Parse()

	store := openStore()
	settings := store.Get()

	// Flags override persisted settings.
	if *host != "" {
		settings.Host = *host
	}
	if *port != 0 {
		settings.Port = *port
	}
	if *serialDev != "" {
		settings.SerialDevice = *serialDev
	}
	if *baud != 0 {
		settings.BaudRate = *baud
	}
	if *timeoutSec != 0 {
		settings.TimeoutSeconds = *timeoutSec
	}

	timeout := time.Duration(settings.TimeoutSeconds * float64(time.Second))

	var cam *visca.Camera
	switch {
	case settings.SerialDevice != "":
		cam = visca.NewSerialCamera(settings.SerialDevice, settings.BaudRate, timeout)
		slog.Info("using serial transport", "device", settings.SerialDevice)
	case settings.Host != "":
		cam = visca.NewCamera(settings.Host, settings.Port, timeout)
	default:
		slog.Error("no camera configured: pass -host or -serial")
		os.Exit(1)
	}

	if err := cam.Connect(); err != nil {
		slog.Error("camera connection failed", "err", err)
		os.Exit(1)
	}
	defer cam.Close()

	if err := store.Update(settings); err != nil {
		slog.Warn("could not persist settings", "err", err)
	}

	fmt.Println("Connected. Type 'help' for commands.")
	repl(cam, store)
}

func openStore() *config.Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("no config directory, settings will not persist", "err", err)
		return config.NewMemoryStore()
	}
	store, err := config.NewStore(filepath.Join(dir, "viscactl"))
	if err != nil {
		slog.Warn("could not open settings store", "err", err)
		return config.NewMemoryStore()
	}
	return store
}

func repl(cam *visca.Camera, store *config.Store) {
	reader := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for reader.Scan() {
		parts := strings.Fields(strings.TrimSpace(reader.Text()))
		if len(parts) == 0 {
			fmt.Print("> ")
			continue
		}
		if parts[0] == "quit" || parts[0] == "exit" {
			return
		}
		if err := runCommand(cam, store, parts); err != nil {
			fmt.Println("error:", err)
		}
		fmt.Print("> ")
	}
}

func runCommand(cam *visca.Camera, store *config.Store, parts []string) error {
	switch parts[0] {
	case "help":
		printHelp()
		return nil

	case "pan":
		ps, ts, err := twoInts(parts[1:], "pan <pan_speed> <tilt_speed>")
		if err != nil {
			return err
		}
		return cam.PanTilt(ps, ts)

	case "stop":
		if err := cam.PanTiltStop(); err != nil {
			return err
		}
		return cam.ZoomStop()

	case "home":
		return cam.PanTiltHome()

	case "reset":
		return cam.PanTiltReset()

	case "moveto", "moveby":
		pan, tilt, err := twoInts(parts[1:], parts[0]+" <pan> <tilt> [speed]")
		if err != nil {
			return err
		}
		speed := 10
		if len(parts) > 3 {
			if speed, err = strconv.Atoi(parts[3]); err != nil {
				return fmt.Errorf("invalid speed %q", parts[3])
			}
		}
		if parts[0] == "moveto" {
			return cam.PanTiltAbsolute(speed, speed, int16(pan), int16(tilt))
		}
		return cam.PanTiltRelative(speed, speed, int16(pan), int16(tilt))

	case "pos":
		pan, tilt, err := cam.PanTiltPosition()
		if err != nil {
			return err
		}
		fmt.Printf("pan=%d tilt=%d\n", pan, tilt)
		return nil

	case "zoom":
		speed, err := oneInt(parts[1:], "zoom <speed>")
		if err != nil {
			return err
		}
		return cam.Zoom(speed)

	case "zoomto":
		if len(parts) < 2 {
			return fmt.Errorf("usage: zoomto <0.0-1.0>")
		}
		frac, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("invalid zoom position %q", parts[1])
		}
		return cam.ZoomTo(frac)

	case "zoompos":
		zoom, err := cam.ZoomPosition()
		if err != nil {
			return err
		}
		fmt.Printf("zoom=%d\n", zoom)
		return nil

	case "focus":
		if len(parts) < 2 {
			mode, err := cam.FocusMode()
			if err != nil {
				return err
			}
			fmt.Println("focus mode:", mode)
			return nil
		}
		mode, err := visca.ParseFocusMode(strings.Join(parts[1:], " "))
		if err != nil {
			return err
		}
		return cam.SetFocusMode(mode)

	case "focusspeed":
		speed, err := oneInt(parts[1:], "focusspeed <speed>")
		if err != nil {
			return err
		}
		return cam.ManualFocus(speed)

	case "preset":
		if len(parts) < 3 || (parts[1] != "save" && parts[1] != "recall") {
			return fmt.Errorf("usage: preset save|recall <slot>")
		}
		slot, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("invalid preset slot %q", parts[2])
		}
		if parts[1] == "save" {
			return cam.SavePreset(slot)
		}
		return cam.RecallPreset(slot)

	case "alias":
		if len(parts) < 3 {
			return fmt.Errorf("usage: alias <name> <slot>")
		}
		slot, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("invalid preset slot %q", parts[2])
		}
		return store.SetPreset(parts[1], slot)

	case "goto":
		if len(parts) < 2 {
			return fmt.Errorf("usage: goto <alias|slot>")
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			var ok bool
			if slot, ok = store.Preset(parts[1]); !ok {
				return fmt.Errorf("unknown preset alias %q", parts[1])
			}
		}
		return cam.RecallPreset(slot)

	case "power":
		if len(parts) < 2 {
			on, err := cam.PowerStatus()
			if err != nil {
				return err
			}
			fmt.Println("power:", map[bool]string{true: "on", false: "standby"}[on])
			return nil
		}
		switch parts[1] {
		case "on":
			return cam.SetPower(true)
		case "off":
			return cam.SetPower(false)
		}
		return fmt.Errorf("usage: power [on|off]")
	}

	return fmt.Errorf("unknown command %q, type 'help'", parts[0])
}

func oneInt(args []string, usage string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return v, nil
}

func twoInts(args []string, usage string) (int, int, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("usage: %s", usage)
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", args[0])
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", args[1])
	}
	return a, b, nil
}

func printHelp() {
	fmt.Println(`Commands:
  pan <ps> <ts>        continuous pan/tilt, speeds -24..24
  stop                 stop pan/tilt and zoom
  home                 move to home position
  reset                reset pan/tilt
  moveto <p> <t> [spd] absolute pan/tilt position
  moveby <p> <t> [spd] relative pan/tilt offset
  pos                  query pan/tilt position
  zoom <speed>         continuous zoom, speed -7..7
  zoomto <0.0-1.0>     absolute zoom position
  zoompos              query zoom position
  focus [mode]         query or set focus mode (auto, manual,
                       auto/manual, one push trigger, infinity)
  focusspeed <speed>   manual focus, speed -7..7
  preset save|recall <slot>
  alias <name> <slot>  name a preset slot
  goto <alias|slot>    recall a preset by name or slot
  power [on|off]       query or set power
  quit`)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
