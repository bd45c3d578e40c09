package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"Tonegram/cmd/tonegram/config"
	"Tonegram/pkg/async"
	"Tonegram/pkg/modem"
	"Tonegram/pkg/session"
)

func main() {
	configPath := flag.String("config", "config.yml", "node configuration file")
	channel := flag.String("channel", "", "channel preset name")
	message := flag.String("send", "", "send one message and exit instead of chatting")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if os.IsNotExist(err) {
		cfg = &config.Config{}
	} else if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	channelCfg, err := cfg.Channel(*channel)
	if err != nil {
		logrus.WithError(err).Fatal("resolving channel preset")
	}

	dev, err := buildDevice(cfg, channelCfg)
	if err != nil {
		logrus.WithError(err).Fatal("building device")
	}

	sess, err := session.New(dev, channelCfg)
	if err != nil {
		logrus.WithError(err).Fatal("creating session")
	}

	if *message != "" {
		sendOnce(sess, channelCfg, *message)
		return
	}

	chat(sess)
}

// sendOnce plays a single message and exits once playback had time to
// finish.
func sendOnce(sess *session.Session, channelCfg modem.Config, message string) {
	if err := sess.Send(message); err != nil {
		logrus.WithError(err).Fatal("sending message")
	}
	defer sess.Stop()

	samples := 2*channelCfg.GuardSamples() +
		symbolCount(len(message)+2, channelCfg.BitsPerSymbol)*channelCfg.SymbolSamples()
	playtime := time.Duration(float64(samples) / channelCfg.SampleRate * float64(time.Second))

	fmt.Printf("playing %v of audio, press Enter to abort\n", playtime.Round(time.Millisecond))
	select {
	case <-time.After(playtime + 100*time.Millisecond):
	case <-async.EnterKey():
	}
}

// chat listens continuously, printing decoded messages and sending each
// line typed on stdin.
func chat(sess *session.Session) {
	if err := sess.Start(); err != nil {
		logrus.WithError(err).Fatal("starting session")
	}
	defer sess.Stop()

	async.Job(func() {
		for ev := range sess.Events() {
			switch ev.Kind {
			case session.EventMessage:
				fmt.Printf("<< %s\n", ev.Text)
			case session.EventStatus:
				fmt.Printf("-- %s\n", ev.Text)
			case session.EventError:
				logrus.WithError(ev.Err).Warn("modem error")
			}
		}
	})

	scanErr := async.Promise(func() error {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if err := sess.Send(line); err != nil {
				logrus.WithError(err).Error("sending message")
			}
		}
		return scanner.Err()
	})
	if err := <-scanErr; err != nil {
		logrus.WithError(err).Error("reading stdin")
	}
}

func symbolCount(packetBytes, bitsPerSymbol int) int {
	return (8*packetBytes + bitsPerSymbol - 1) / bitsPerSymbol
}
