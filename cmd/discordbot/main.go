/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/internal/config"
	"github.com/mikeb26/swiss-standings/tdf"
	"github.com/mikeb26/swiss-standings/watch"
)

type TopLevelCommand string

const (
	TdCmd TopLevelCommand = "td"
)

type CmdHandler func(b *bot, ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TdCmd: (*bot).tdCmdHandler,
}

// bot carries everything an interaction needs: the resolved settings, the
// key used to verify discord's signatures and the tracker holding the most
// recently computed standings.
type bot struct {
	settings config.Settings
	pubKey   ed25519.PublicKey
	tracker  *watch.Tracker
	registry *prometheus.Registry
}

func newBot(settings config.Settings) (*bot, error) {
	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(settings.DiscordPublicKey))
	if err != nil {
		return nil, fmt.Errorf("discordbot.init: failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("discordbot.init: public key is %d bytes; expected %d",
			len(pubKeyBytes), ed25519.PublicKeySize)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &bot{
		settings: settings,
		pubKey:   ed25519.PublicKey(pubKeyBytes),
		tracker:  watch.NewTracker(settings.Standings, watch.NewMetrics(reg)),
		registry: reg,
	}, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(b, r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func (b *bot) newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{}))
	return mux
}

// cmdHashPath holds the hash of the last registered command definition so
// that restarts only re-register when the definition changes.
func cmdHashPath() string {
	return filepath.Join(config.XDGConfigHome(), "swisstd", "discord-cmd.hash")
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) (bool, string) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return false, ""
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hexString := hex.EncodeToString(hasher.Sum(nil))

	lastCmdUpdateHash, _ := os.ReadFile(cmdHashPath())

	return hexString != strings.TrimSpace(string(lastCmdUpdateHash)), hexString
}

func (b *bot) registerSlashCommands(client *discordgo.Session) {
	tdCmd := tdCommandDefinition()
	appID := b.settings.DiscordAppID
	cmdID := b.settings.DiscordCommandID

	update, hash := shouldUpdateCmdRegistration(tdCmd)
	if cmdID != "" && !update {
		return
	}

	var cmd *discordgo.ApplicationCommand
	var err error
	if cmdID == "" {
		cmd, err = client.ApplicationCommandCreate(appID, "", tdCmd)
	} else {
		cmd, err = client.ApplicationCommandEdit(appID, "", cmdID, tdCmd)
	}
	if err != nil {
		log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: registered %v(cmdID:%v); set [discord] command-id to skip re-creation",
		cmd.Name, cmd.ID)

	if err := os.MkdirAll(filepath.Dir(cmdHashPath()), 0o755); err == nil {
		if err := os.WriteFile(cmdHashPath(), []byte(hash), 0o644); err != nil {
			log.Printf("discordbot.reg: failed to save cmd hash: %v", err)
		}
	}
}

// startPolling keeps the tracker current with the configured event.
func (b *bot) startPolling(ctx context.Context) error {
	if b.settings.URL == "" && b.settings.PairingsURL == "" {
		return fmt.Errorf("discordbot.poll: no [source] url configured")
	}
	client := internal.NewCachedHttpClient(ctx, b.settings.CacheOptions())
	loc := tdf.Location{URL: b.settings.URL, PairingsURL: b.settings.PairingsURL}
	load := func(ctx context.Context) (*tdf.Event, error) {
		return tdf.GetEvent(ctx, client, loc, b.settings.Standings)
	}

	poller := watch.NewPoller(b.tracker, load, b.settings.PollInterval)
	go func() {
		err := poller.Run(ctx, func(res *watch.Result) {
			log.Printf("discordbot.poll: loaded %v generation %v", res.Event.Name,
				res.Generation)
		})
		log.Printf("discordbot.poll: stopped: %v", err)
	}()

	return nil
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	configPath := flag.String("config", config.DefaultConfigPath(), "config file path")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	b, err := newBot(settings)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	client, err := discordgo.New("Bot " + settings.DiscordToken)
	if err != nil {
		log.Fatalf("discordbot.main: Failed to initialize discord client: %v", err)
	}
	go b.registerSlashCommands(client)

	ctx := context.Background()
	if err := b.startPolling(ctx); err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname, *addr)

	if err := http.ListenAndServe(*addr, b.newMux()); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
