package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	redisadapter "github.com/itamlab/assetview-ui/internal/adapters/redis"
	"github.com/itamlab/assetview-ui/internal/backend"
	"github.com/itamlab/assetview-ui/internal/bootstrap"
	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

const (
	sessionScanCount  = 100
	commandTimeout    = 2 * time.Minute
	maskedTokenLength = 8
)

type listSessionsOptions struct {
	Limit int
}

type clearSessionsOptions struct {
	SessionID string
	All       bool
	DryRun    bool
	Yes       bool
}

type mintSessionOptions struct {
	Username string
	Password string
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts listSessionsOptions
	fs.IntVar(&opts.Limit, "limit", 100, "Maximum sessions to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis(cmdCtx, client)

	prefix := cmdCtx.Config.Session.KeyPrefix
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "SESSION ID\tUSERNAME\tROLE\tTOKEN\tTTL\n"); err != nil {
		return err
	}

	count := 0
	iter := client.Scan(ctx, 0, prefix+"*", sessionScanCount).Iterator()
	for iter.Next(ctx) {
		if count >= opts.Limit {
			break
		}
		key := iter.Val()
		id := strings.TrimPrefix(key, prefix)

		data, getErr := client.Get(ctx, key).Result()
		if getErr != nil {
			cmdCtx.Logger.Warn("read session failed", "key", key, "error", getErr)
			continue
		}
		ttl, _ := client.TTL(ctx, key).Result()

		var sess domainauth.Session
		if jsonErr := json.Unmarshal([]byte(data), &sess); jsonErr != nil {
			cmdCtx.Logger.Warn("decode session failed", "key", key, "error", jsonErr)
			continue
		}

		username, role := "-", "-"
		if sess.User != nil {
			username = sess.User.Username
			role = string(sess.User.Role)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", id, username, role, maskToken(sess.Token), ttl); err != nil {
			return err
		}
		count++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "\n%d session(s)\n", count)
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts clearSessionsOptions
	fs.StringVar(&opts.SessionID, "session-id", "", "Session ID to clear (required unless --all)")
	fs.BoolVar(&opts.All, "all", false, "Clear all sessions (signs everyone out)")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.SessionID == "" && !opts.All {
		return errors.New("either --session-id or --all is required")
	}
	if opts.SessionID != "" && opts.All {
		return errors.New("--session-id and --all are mutually exclusive")
	}
	if err := confirmClear(opts); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis(cmdCtx, client)

	prefix := cmdCtx.Config.Session.KeyPrefix
	if opts.SessionID != "" {
		if opts.DryRun {
			return writef(os.Stdout, "would delete %s%s\n", prefix, opts.SessionID)
		}
		deleted, delErr := client.Del(ctx, prefix+opts.SessionID).Result()
		if delErr != nil {
			return fmt.Errorf("delete session: %w", delErr)
		}
		cmdCtx.Logger.Info("clear sessions complete", "deleted", deleted)
		return nil
	}

	var deleted int64
	iter := client.Scan(ctx, 0, prefix+"*", sessionScanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if opts.DryRun {
			if err := writef(os.Stdout, "would delete %s\n", key); err != nil {
				return err
			}
			continue
		}
		n, delErr := client.Del(ctx, key).Result()
		if delErr != nil {
			return fmt.Errorf("delete %s: %w", key, delErr)
		}
		deleted += n
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	if !opts.DryRun {
		cmdCtx.Logger.Info("clear sessions complete", "deleted", deleted)
	}
	return nil
}

// runMintSession exchanges credentials for a backend token and stores the
// resulting session, printing the session ID to paste into a cookie. Meant
// for debugging against real backends without going through the login form.
func runMintSession(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("mint-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts mintSessionOptions
	fs.StringVar(&opts.Username, "username", "", "Backend username (required)")
	fs.StringVar(&opts.Password, "password", "", "Backend password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.Username == "" || opts.Password == "" {
		return errors.New("--username and --password are required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis(cmdCtx, client)

	store := redisadapter.NewSessionStore(client, redisadapter.Options{
		Prefix: cmdCtx.Config.Session.KeyPrefix,
		TTL:    cmdCtx.Config.Session.TTL,
		Logger: cmdCtx.Logger,
	})

	api, err := backend.NewClient(backend.Options{
		BaseURL:          cmdCtx.Config.Backend.BaseURL,
		Sessions:         store,
		ErrorMessageExpr: cmdCtx.Config.Backend.ErrorMessageExpr,
		Timeout:          cmdCtx.Config.Backend.Timeout,
		Logger:           cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	result, err := api.Login(ctx, opts.Username, opts.Password)
	if err != nil {
		return fmt.Errorf("backend login: %w", err)
	}

	claim := result.Claim()
	sessionID := uuid.NewString()
	if err := store.Save(ctx, sessionID, domainauth.Session{Token: result.Token, User: &claim}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return writef(os.Stdout, "session minted\n  cookie: %s=%s\n  user: %s (%s)\n",
		cmdCtx.Config.Session.CookieName, sessionID, claim.Username, claim.Role)
}

func confirmClear(opts clearSessionsOptions) error {
	if opts.DryRun || opts.Yes {
		return nil
	}
	scope := "session " + opts.SessionID
	if opts.All {
		scope = "ALL sessions"
	}
	if err := writef(os.Stdout, "About to delete %s. Continue? [y/N]: ", scope); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func connectRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	if !cmdCtx.Config.Redis.Configured() {
		return nil, errors.New("redis is not configured: set REDIS_URI")
	}
	return bootstrap.ConnectRedis(cmdCtx.Config.Redis, cmdCtx.Logger)
}

func closeRedis(cmdCtx *commandContext, client redis.UniversalClient) {
	if err := client.Close(); err != nil {
		cmdCtx.Logger.Warn("redis close failed", "error", err)
	}
}

func maskToken(token string) string {
	if len(token) <= maskedTokenLength {
		return "********"
	}
	return token[:maskedTokenLength] + "..."
}
