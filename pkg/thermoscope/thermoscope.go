package thermoscope

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thermoscope/thermoscope/pkg/busy"
	"github.com/thermoscope/thermoscope/pkg/command"
	"github.com/thermoscope/thermoscope/pkg/diag"
	"github.com/thermoscope/thermoscope/pkg/display"
	"github.com/thermoscope/thermoscope/pkg/faults"
	"github.com/thermoscope/thermoscope/pkg/filter"
	"github.com/thermoscope/thermoscope/pkg/graph"
	"github.com/thermoscope/thermoscope/pkg/lcg"
	"github.com/thermoscope/thermoscope/pkg/mqtt"
	"github.com/thermoscope/thermoscope/pkg/router"
	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/sensor"
	"github.com/thermoscope/thermoscope/pkg/serial"
	"github.com/thermoscope/thermoscope/pkg/term"
	"github.com/thermoscope/thermoscope/pkg/watchdog"
	"github.com/thermoscope/thermoscope/pkg/window"
	"golang.org/x/sync/errgroup"
)

func Root() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		slogOpts := slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		if viper.GetBool("debug") {
			slogOpts.Level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slogOpts))
		slog.SetDefault(log)

		ctx, cancelFunc := context.WithCancel(context.Background())
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(-1)

		// Collaborators
		var port serial.Port
		var dev display.Device
		switch viper.GetString("ui") {
		case "tui":
			ui, err := term.NewUI()
			errChk(err)
			port = ui
			dev = ui
			g.Go(ui.Run(ctx, cancelFunc))
		case "none":
			port = serial.NewStdPort(os.Stdin, os.Stdout)
			dev = display.Nop{}
		default:
			port = serial.NewStdPort(os.Stdin, os.Stdout)
			dev = display.NewText(os.Stdout)
		}
		errChk(dev.Init(true))
		dev.On()
		dev.Clear()

		port.WriteString("Starting...\n")

		// Scheduler bookkeeping and the fail-stop overflow hook
		sim := rtos.NewSim()
		sim.OnOverflow(faults.StopHandler(port))
		g.Go(sim.Monitor(ctx, time.Second))

		queueSize := viper.GetInt("queue-size")
		reportInterval := viper.GetDuration("report-interval")
		shared := window.NewShared(viper.GetInt("filter-window"))
		rng := lcg.New(viper.GetUint32("seed"))

		sensorTask := sim.NewTask("TempSensor", 96, 1)
		filterTask := sim.NewTask("FilterTask", 96, 2)
		graphTask := sim.NewTask("GraphTask", 96, 3)
		readerTask := sim.NewTask("UARTReader", 96, 4)
		monitorTask := sim.NewTask("MonitorStack", 64, 1)
		topTask := sim.NewTask("TopTask", 64, 1)

		// Sensor
		rawCh, sensorFn := sensor.TemperatureChannel(ctx, rng, viper.GetDuration("sample-interval"), queueSize, sensorTask)
		slog.Debug("starting sensor")
		g.Go(sensorTask.Run(sensorFn))
		rawFan := router.NewFan[int]("raw", rawCh)
		g.Go(rawFan.Run)

		// Filter
		filteredCh, filterFn := filter.FilteredChannel(rawFan.Subscribe("filter"), shared, port, queueSize, filterTask)
		slog.Debug("starting filter")
		g.Go(filterTask.Run(filterFn))
		filteredFan := router.NewFan[int]("filtered", filteredCh)
		g.Go(filteredFan.Run)

		// Graph
		slog.Debug("starting graph renderer")
		g.Go(graphTask.Run(graph.NewGraph(filteredFan.Subscribe("graph"), dev, viper.GetDuration("render-interval"), graphTask)))

		// Operator console
		slog.Debug("starting command reader")
		g.Go(readerTask.Run(command.NewReader(ctx, port, shared, viper.GetDuration("input-poll-interval"), readerTask)))

		// Diagnostics
		pipeline := []*rtos.Handle{sensorTask, filterTask, graphTask, readerTask}
		g.Go(monitorTask.Run(diag.NewMonitorStack(ctx, port, reportInterval, pipeline, monitorTask)))
		g.Go(topTask.Run(diag.NewTop(ctx, port, reportInterval, sim, topTask)))
		g.Go(diag.NewSignalStats(filteredFan.Subscribe("stats"), viper.GetInt("stats-window"), reportInterval))

		// MQTT
		if broker := viper.GetString("mqtt-broker"); broker != "" {
			mqttUrl, err := url.Parse(broker)
			errChk(err)
			mc := mqtt.NewClient(mqttUrl, viper.GetInt("mqtt-sample-interval"))
			errChk(mc.Connect())
			g.Go(mc.GetPublisher(rawFan.Subscribe("mqtt"), filteredFan.Subscribe("mqtt"), shared))
			errChk(mc.HomeAssistant())
		}

		// Watchdog
		if stallTimeout := viper.GetDuration("stall-timeout"); stallTimeout > 0 {
			g.Go(watchdog.NewWatchdog(stallTimeout, func(timeout time.Duration) {
				slog.Error("filtered stream stalled", "timeout", timeout)
			}, filteredFan.Subscribe("watchdog")))
		}

		// Synthetic load
		if viper.GetBool("busy") {
			busyTask := sim.NewTask("BusyTask", 128, 1)
			g.Go(busyTask.Run(busy.NewBusy(ctx, busyTask)))
		}

		// Signal handling
		chanSignal := make(chan os.Signal, 1)
		signal.Notify(chanSignal, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

		g.Go(func() error {
			defer cancelFunc()
			select {
			case <-ctx.Done():
			case <-chanSignal:
			}
			slog.Info("shutting down...")
			return nil
		})

		slog.Debug("waiting for goroutines to finish")
		err := g.Wait()
		errChk(err)
	}
}

func errChk(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
