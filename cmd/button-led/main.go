// Command button-led drives an LED from a debounced pushbutton and
// emits the panel's console protocol on stdout: READY, a bare
// millisecond mark every 100ms, EVENT lines on edges, and DONE after
// the second button release.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/button-led/internal/gpio"
	"github.com/sweeney/button-led/internal/logic"
	"github.com/sweeney/button-led/internal/mqtt"
	"github.com/sweeney/button-led/internal/status"
	"github.com/sweeney/button-led/internal/web"
)

// doneFlushWait gives the final flush time to reach the console sink
// before the process exits.
const doneFlushWait = 100 * time.Millisecond

func main() {
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the LED output")
	pinButton := flag.Int("pin-button", gpio.DefaultPinButton, "BCM pin number for the button input")
	broker := flag.String("broker", "", "MQTT broker address for the event mirror (empty to disable)")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")

	flag.Parse()

	if err := run(*pinLED, *pinButton, *broker, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(pinLED, pinButton int, broker, httpAddr string) error {
	// The protocol constants are fixed; only the platform shim and the
	// optional mirrors are configurable.
	cfg := logic.DefaultConfig()

	// Initialize GPIO
	led, err := gpio.NewRealLED(pinLED)
	if err != nil {
		return fmt.Errorf("init LED: %w", err)
	}
	defer led.Close()

	button, err := gpio.NewRealButton(pinButton)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer button.Close()

	// Optional MQTT event mirror
	var pub mqtt.Publisher
	var pubStatus mqtt.ConnectionStatus
	if broker != "" {
		rp := mqtt.NewRealPublisher(broker)
		defer rp.Close()
		pub = rp
		pubStatus = rp
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:          cfg.PollInterval.Milliseconds(),
		TickMs:          cfg.TickInterval.Milliseconds(),
		DebounceSamples: cfg.DebounceThreshold,
		ReleasesToDone:  cfg.ReleasesToTerminate,
		Broker:          broker,
		HTTPAddr:        httpAddr,
	})

	// Optional HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: led=%d button=%d poll=%v debounce=%d samples",
		pinLED, pinButton, cfg.PollInterval, cfg.DebounceThreshold)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	out := bufio.NewWriter(os.Stdout)
	return runLoop(button, led, out, pub, pubStatus, tracker, cfg, time.Now, ticker.C, time.Sleep, sigCh)
}

// runLoop owns the console protocol. Per iteration, in order: catch-up
// time marks, LED level write, LED edge line, button edge line; DONE
// and the flush-wait on the terminating iteration. Diagnostics go to
// the log, never to the protocol stream.
func runLoop(button gpio.Button, led gpio.LED, out *bufio.Writer, pub mqtt.Publisher, pubStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg logic.Config, now func() time.Time, tick <-chan time.Time, sleep func(time.Duration), sig <-chan os.Signal) error {
	start := now()
	ctl := logic.NewController(cfg)

	writeLine(out, logic.LineReady)
	if err := out.Flush(); err != nil {
		log.Printf("flush error: %v", err)
	}

	publishSystem(pub, pubStatus, tracker, start, "STARTUP", "")

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			reason := "UNKNOWN"
			if s == syscall.SIGINT {
				reason = "SIGINT"
			} else if s == syscall.SIGTERM {
				reason = "SIGTERM"
			}
			publishSystem(pub, pubStatus, tracker, now(), "SHUTDOWN", reason)
			return out.Flush()

		case <-tick:
			t := now()
			pressed, err := button.Pressed()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			res := ctl.Step(logic.Input{
				Pressed: pressed,
				Elapsed: t.Sub(start),
				Time:    t,
			})

			for _, m := range res.Marks {
				writeLine(out, logic.FormatMark(m))
			}

			// The level is driven every iteration; the event line only
			// fires on the edge.
			if err := led.Set(res.LED); err != nil {
				log.Printf("led write error: %v", err)
			}

			for _, e := range res.Events {
				writeLine(out, e.Type.Line())
				if pub != nil {
					if err := pub.Publish(e); err != nil {
						log.Printf("publish error: %v", err)
					}
				}
			}

			if tracker != nil {
				ledState, buttonState := ctl.CurrentState()
				tracker.Update(ledState, buttonState, ctl.Counts(), ctl.Releases())
				if pubStatus != nil {
					tracker.SetMQTTConnected(pubStatus.IsConnected())
				}
			}

			if res.Decision == logic.Terminate {
				writeLine(out, logic.LineDone)
				if err := out.Flush(); err != nil {
					log.Printf("flush error: %v", err)
				}
				if tracker != nil {
					tracker.SetDone()
				}
				publishSystem(pub, pubStatus, tracker, t, "SHUTDOWN", "DONE")
				sleep(doneFlushWait)
				return nil
			}

			if err := out.Flush(); err != nil {
				log.Printf("flush error: %v", err)
			}
		}
	}
}

// writeLine appends one protocol line. Best-effort: a failed write must
// not stop the loop, so errors surface on Flush instead.
func writeLine(out *bufio.Writer, line string) {
	out.WriteString(line)
	out.WriteByte('\n')
}

func publishSystem(pub mqtt.Publisher, pubStatus mqtt.ConnectionStatus, tracker *status.Tracker, t time.Time, event, reason string) {
	if pub == nil {
		return
	}
	ev := mqtt.SystemEvent{
		Timestamp: t,
		Event:     event,
		Reason:    reason,
		Retained:  true,
	}
	if tracker != nil {
		if pubStatus != nil {
			tracker.SetMQTTConnected(pubStatus.IsConnected())
		}
		ev.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), event, reason)
	}
	if err := pub.PublishSystem(ev); err != nil {
		log.Printf("failed to publish %s event: %v", event, err)
	} else {
		log.Printf("published %s event", event)
	}
}
