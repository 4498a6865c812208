package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"PicoWeather/device"
	"PicoWeather/link"
	"PicoWeather/responder"
	"PicoWeather/sensor"
	"PicoWeather/status"
	"PicoWeather/supervisor"
)

var args ProgramArgs

func parseArgs(argv []string) (ProgramArgs, error) {
	a := ProgramArgs{}
	argParser := flags.NewParser(&a, flags.Default)
	_, err := argParser.ParseArgs(argv)
	if err != nil {
		return a, err
	}
	if a.Link == "wifi" && a.SSID == "" {
		return a, fmt.Errorf("missing WiFi SSID (--ssid or WIFI_SSID)")
	}
	return a, nil
}

func setupHost() {
	if _, err := host.Init(); err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
}

func setupLED(name string) status.Output {
	if name == "" {
		log.Println("No status LED configured")
		return status.Nop{}
	}

	pin := gpioreg.ByName(name)
	if pin == nil {
		log.Fatalf("Couldn't find LED pin %s", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		log.Fatalf("Couldn't drive LED pin %s: %v", name, err)
	}
	return pin
}

// setupSensor returns the sensor and its cleanup. Host drivers must already be
// initialised.
func setupSensor() (sensor.Sensor, func()) {
	switch args.Sensor {
	case "dht11", "dht22":
		dev, err := sensor.OpenDHT(args.SensorPin, args.Sensor)
		if err != nil {
			log.Fatalf("Couldn't initialize sensor: %v", err)
		}
		return dev, func() {}
	case "scd4x":
		dev, err := sensor.OpenSCD4x(args.I2CDevice)
		if err != nil {
			log.Fatalf("Couldn't initialize sensor: %v", err)
		}
		return dev, func() {
			if err := dev.Close(); err != nil {
				log.Printf("Error while stopping SCD4x: %v\n", err)
			}
		}
	default:
		log.Println("Using simulated sensor")
		return sensor.Simulated{}, func() {}
	}
}

func setupLink() (link.Driver, func()) {
	if args.Link == "iface" {
		return link.NewIface(args.Interface), func() {}
	}

	w, err := link.OpenWiFi(args.Interface)
	if err != nil {
		log.Fatalf("Couldn't open wireless interface: %v", err)
	}
	return w, func() { w.Close() }
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var err error
	args, err = parseArgs(os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Fatalf("arg parse fail: %v", err)
	}

	// Boring hardware setup (error handling happens in these functions)
	setupHost()
	clock := clockwork.NewRealClock()
	indicator := status.New(setupLED(args.LEDPin), clock)

	sens, closeSensor := setupSensor()
	defer closeSensor()

	drv, closeLink := setupLink()
	defer closeLink()

	// SIGINT and SIGTERM stop the join wait or the server loop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := link.NewManager(drv, link.Credentials{SSID: args.SSID, Passphrase: args.Passphrase}, indicator, clock)
	if err := manager.Join(ctx); err != nil {
		log.Printf("Shutdown (%v)\n", err)
		return
	}

	ip, mac, err := manager.Address()
	if err != nil {
		log.Fatalf("Couldn't read interface address: %v", err)
	}
	log.Printf("Connected! IP: %s, MAC: %s\n", ip, mac)

	setHostname(args.Hostname)

	dev := &device.Context{
		Identity:  device.NewIdentity(ip, mac, args.Hostname),
		Sensor:    sens,
		Indicator: indicator,
	}

	addr := fmt.Sprintf("%s:%d", args.Host, args.Port)
	loop := &supervisor.Loop{
		Link:      manager,
		Indicator: indicator,
		Server:    responder.New(dev),
		Clock:     clock,
		Listen: func() (net.Listener, error) {
			return net.Listen("tcp", addr)
		},
		Mode: args.Mode(),
	}

	log.Printf("Server running at %s or %s, listening on %s (%s)…\n", dev.Identity.IP, dev.Identity.Hostname, addr, loop.Mode)
	err = loop.Run(ctx)
	log.Printf("Shutdown (%v)\n", err)
}
