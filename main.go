package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/pulsar/api"
	"github.com/matt-g-everett/pulsar/render"
	"github.com/matt-g-everett/pulsar/surface"
)

type app struct {
	Config   render.Config
	Client   mqtt.Client
	Memory   *surface.Memory
	Provider surface.Provider
	Pulsar   *render.Pulsar
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) readConfig(configPath string) {
	config, err := render.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	log.Printf("Connection lost: %v", err)
}

// setupSurface publishes frames over MQTT when a broker is configured and
// otherwise only keeps them in memory for the preview server.
func (a *app) setupSurface() {
	if a.Config.Mqtt.URL == "" {
		a.Memory = surface.NewMemory()
		a.Provider = a.Memory
		return
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)

	s := surface.NewMqtt(a.Client, a.Config.Mqtt.Topic, a.Config.Mqtt.Qos,
		a.Config.Surface.Brightness, a.Config.Mqtt.PublishTimeout())
	a.Memory = s.Memory
	a.Provider = s
}

func (a *app) run() {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			panic(token.Error())
		}
	}

	go func() {
		if err := a.Api.Serve(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	a.Memory.Create(a.Config.Surface.Width, a.Config.Surface.Height)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	log.Printf("Received %v, shutting down", sig)

	a.Memory.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Api.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if a.Client != nil {
		a.Client.Disconnect(250)
	}
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Animation: %+v, loop: %+v", a.Config.Animation, a.Config.Loop)

	a.setupSurface()

	pulsar, err := render.NewPulsar(a.Config, a.Provider)
	if err != nil {
		panic(err)
	}
	a.Pulsar = pulsar
	a.Memory.AddCallback(a.Pulsar)
	a.Api = api.NewApi(a.Config.HTTP.Addr, a.Pulsar, a.Memory)

	a.run()
}
