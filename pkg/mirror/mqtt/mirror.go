// Package mqtt mirrors log lines to an MQTT broker.
package mqtt

import (
	"errors"
	"net/url"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// DefaultTimeout bounds connect and publish waits.
const DefaultTimeout = 5 * time.Second

// ErrTimeout indicates the broker did not acknowledge in time.
var ErrTimeout = errors.New("mqtt operation timed out")

// Queue wraps the MQTT client used for mirroring.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
	// Timeout bounds connect and publish waits.
	// Defaults to DefaultTimeout.
	Timeout time.Duration
}

// ClientOptionsFromURL creates ClientOptions from URL. The URL path
// becomes the topic prefix:
// mqtt://host:port/topic-prefix/?client-id=ID
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := u.Path
	if strings.HasPrefix(topicPrefix, "/") {
		topicPrefix = topicPrefix[1:]
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}

	return opts, topicPrefix, nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, Timeout: DefaultTimeout}
	options.SetOnConnectHandler(q.onConnect)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client and waits for the result.
func (q *Queue) Connect() error {
	return q.wait(q.Client.Connect())
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Pub publishes payload to prefix+topic and waits for completion.
func (q *Queue) Pub(topic string, payload []byte) error {
	if glog.V(2) {
		glog.Infof("PUB %q %dB", q.TopicPrefix+topic, len(payload))
	}
	return q.wait(q.Client.Publish(q.TopicPrefix+topic, 0, false, payload))
}

func (q *Queue) wait(token paho.Token) error {
	d := q.Timeout
	if d <= 0 {
		d = DefaultTimeout
	}
	if !token.WaitTimeout(d) {
		return ErrTimeout
	}
	return token.Error()
}

func (q *Queue) onConnect(paho.Client) {
	glog.Info("connected")
}

func (q *Queue) onConnectionLost(c paho.Client, err error) {
	glog.Warningf("connection lost: %v", err)
}

// LogTopic is the live mirror topic for a device.
func LogTopic(deviceID string) string {
	return deviceID + "/log"
}

// BootTopic is the replayed previous session topic for a device.
func BootTopic(deviceID string) string {
	return deviceID + "/boot"
}

// Mirror implements io.Writer, publishing each write as one message.
type Mirror struct {
	Queue *Queue
	Topic string
}

// NewMirror creates a Mirror publishing to topic through q.
func NewMirror(q *Queue, topic string) *Mirror {
	return &Mirror{Queue: q, Topic: topic}
}

// Write implements io.Writer. The publish may outlive the call, so a
// private copy of p is taken.
func (m *Mirror) Write(p []byte) (int, error) {
	if err := m.Queue.Pub(m.Topic, append([]byte(nil), p...)); err != nil {
		return 0, err
	}
	return len(p), nil
}
