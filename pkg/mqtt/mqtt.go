package mqtt

import (
	"crypto/md5"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/thermoscope/thermoscope/pkg/window"
)

type Client struct {
	client      paho.Client
	clientID    string
	topicPrefix string
	qos         byte
	retained    bool
	sampleRate  int
	hassSensors map[string]HassSensor
	mu          sync.Mutex
}

func NewClient(broker *url.URL, sampleRate int) *Client {
	c := &Client{}

	var urls []*url.URL
	urls = append(urls, broker)

	hostname, _ := os.Hostname()
	hostname = strings.Split(hostname, ".")[0]
	clientID := hostname
	if clientID == "" {
		now := time.Now().UnixNano()
		sum := md5.New().Sum([]byte(strconv.FormatInt(now, 10)))
		clientID = string(sum)
	}

	c.qos = 1
	c.topicPrefix = "thermoscope/" + hostname
	c.clientID = clientID
	c.hassSensors = make(map[string]HassSensor)

	slog.Info("connecting to mqtt", "url", broker, "clientid", clientID)
	c.client = paho.NewClient(&paho.ClientOptions{
		Servers:        urls,
		ClientID:       clientID,
		ConnectRetry:   true,
		ConnectTimeout: 30 * time.Second,
	})

	c.sampleRate = sampleRate

	return c
}

func (c *Client) Connect() error {
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		slog.Error("mqtt connection failed", "error", token.Error())
		return token.Error()
	}
	return nil
}

func (c *Client) Subscribe(topic string, handler paho.MessageHandler) error {
	if token := c.client.Subscribe(topic, c.qos, handler); token.Wait() && token.Error() != nil {
		slog.Error("mqtt subscription failed", "error", token.Error())
		return token.Error()
	}
	return nil
}

// GetPublisher returns the telemetry runner: raw and filtered readings
// published at the modulo sample rate, the live window size alongside
// each filtered reading. Returns once both taps have closed.
func (c *Client) GetPublisher(rawChan, filteredChan <-chan int, shared *window.Shared) func() error {
	rawSensor := c.RegisterHassSensor(c.NewHassSensor("Raw Temperature", HassSensorTemperature))
	filteredSensor := c.RegisterHassSensor(c.NewHassSensor("Filtered Temperature", HassSensorTemperature))
	windowSensor := c.RegisterHassSensor(c.NewHassSensor("Filter Window", HassSensorGeneric))

	rawSample := NewSample(c.sampleRate)
	filteredSample := NewSample(c.sampleRate)

	return func() error {
		for rawChan != nil || filteredChan != nil {
			select {
			case raw, ok := <-rawChan:
				if !ok {
					rawChan = nil
					continue
				}
				if !rawSample.Ready() {
					continue
				}
				slog.Debug("mqtt publishing", "field", "raw", "value", raw)
				c.HassPublishSensor(rawSensor, strconv.Itoa(raw))
			case filtered, ok := <-filteredChan:
				if !ok {
					filteredChan = nil
					continue
				}
				if !filteredSample.Ready() {
					continue
				}
				slog.Debug("mqtt publishing", "field", "filtered", "value", filtered)
				c.HassPublishSensor(filteredSensor, strconv.Itoa(filtered))
				c.HassPublishSensor(windowSensor, strconv.Itoa(shared.Load()))
			}
		}
		return nil
	}
}

func (p *Client) Publish(topic string, msg string) {
	t := p.client.Publish(topic, p.qos, p.retained, msg)
	go func() {
		_ = t.WaitTimeout(5 * time.Second)
		if t.Error() != nil {
			slog.Error("mqtt message publish failed", "error", t.Error())
		}
	}()
}
