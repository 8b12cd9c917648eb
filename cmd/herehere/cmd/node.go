package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/network"
	"boscoin.io/herehere/lib/network/api"
	"boscoin.io/herehere/lib/network/httpcache"
	"boscoin.io/herehere/lib/node/runner"
	"boscoin.io/herehere/lib/poll"
	"boscoin.io/herehere/lib/registry"
	"boscoin.io/herehere/lib/storage"
	"boscoin.io/herehere/lib/transaction"
	"boscoin.io/herehere/lib/version"
)

const (
	defaultNetwork  string      = "http"
	defaultPort     int         = 12345
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo

	defaultNTPSyncInterval = 10 * time.Minute
)

var (
	flagConfigFile      string = common.GetENVValue("HEREHERE_CONFIG", "")
	flagNetworkID       string = common.GetENVValue("HEREHERE_NETWORK_ID", "")
	flagLogLevel        string = common.GetENVValue("HEREHERE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput       string = common.GetENVValue("HEREHERE_LOG_OUTPUT", "")
	flagAccessLogOutput string = common.GetENVValue("HEREHERE_ACCESS_LOG_OUTPUT", "")
	flagVerbose         bool   = common.GetENVValue("HEREHERE_VERBOSE", "0") == "1"
	flagBindURL         string = common.GetENVValue(
		"HEREHERE_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("HEREHERE_TLS_CERT", "herehere.crt")
	flagTLSKeyFile          string = common.GetENVValue("HEREHERE_TLS_KEY", "herehere.key")
	flagNTPServer           string = common.GetENVValue("HEREHERE_NTP_SERVER", "")
	flagRateLimitAPI        cmdcommon.ListFlags
	flagHTTPCacheAdapter    string = common.GetENVValue("HEREHERE_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   string = common.GetENVValue("HEREHERE_HTTP_CACHE_POOL_SIZE", strconv.Itoa(common.HTTPCachePoolSize))
	flagHTTPCacheRedisAddrs cmdcommon.ListFlags
)

var (
	nodeCmd *cobra.Command

	serverConfig  network.ServerConfig
	storageConfig *storage.Config
	conf          common.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	accessLog     io.Writer
	log           logging.Logger = common.NopLogger()
)

func init() {
	var flagGenesis string

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run herehere node",
		Run: func(c *cobra.Command, args []string) {
			if len(flagConfigFile) > 0 {
				if err := applyConfigFile(c, flagConfigFile); err != nil {
					cmdcommon.PrintFlagsError(c, "--config", err)
				}
			}

			// `--genesis` performs `herehere genesis` before starting the node
			if len(flagGenesis) != 0 {
				var balanceStr string
				csv := strings.Split(flagGenesis, ",")
				if len(csv) > 2 {
					cmdcommon.PrintFlagsError(c, "--genesis",
						fmt.Errorf("--genesis expects address[,balance], but more than 2 commas detected"))
				}
				if len(csv) == 2 {
					balanceStr = csv[1]
				}
				flagName, err := MakeGenesis(csv[0], flagNetworkID, balanceStr, flagStorageConfigString)
				if len(flagName) != 0 || (err != nil && err != errors.GenesisAlreadyExists) {
					cmdcommon.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsNode()

			runNode()
		},
	}

	flagStorageConfigString = common.GetENVValue("HEREHERE_STORAGE", cmdcommon.GetDefaultStoragePath(nodeCmd))

	nodeCmd.Flags().StringVar(&flagConfigFile, "config", flagConfigFile, "yaml config file; flags given in the command line override it")
	nodeCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "performs the 'genesis' command before running node. Syntax: key[,balance]")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().StringVar(&flagAccessLogOutput, "access-log-output", flagAccessLogOutput, "set the combined access log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "correct the ledger time by this ntp server")
	nodeCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for /api: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M'")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: ex) 'mem', 'redis'")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size of the memory adapter")
	nodeCmd.Flags().Var(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", "redis addrs of the redis adapter: <name>=<addr>, ex) 'server1=localhost:6379'")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagRateLimit(l cmdcommon.ListFlags, defaultRate limiter.Rate) (rule common.RateLimitRule, err error) {
	rule = common.NewRateLimitRule(defaultRate)
	if len(l) < 1 {
		return
	}

	for _, s := range l {
		s = strings.TrimSpace(s)

		var ip, formatted string
		if i := strings.Index(s, "="); i < 0 {
			formatted = s
		} else {
			ip, formatted = s[:i], s[i+1:]
		}

		var rate limiter.Rate
		if rate, err = common.ParseRate(formatted); err != nil {
			return
		}

		if len(ip) < 1 {
			rule.Default = rate // the last one wins
		} else {
			rule.ByIPAddress[ip] = rate
		}
	}

	return
}

func parseFlagRedisAddrs(l cmdcommon.ListFlags) (addrs map[string]string, err error) {
	addrs = map[string]string{}
	for _, s := range l {
		parsed := strings.SplitN(s, "=", 2)
		if len(parsed) != 2 || len(parsed[0]) < 1 || len(parsed[1]) < 1 {
			err = fmt.Errorf("expects <name>=<addr>, but %q", s)
			return
		}
		addrs[parsed[0]] = parsed[1]
	}

	return
}

func parseLogging(c *cobra.Command) {
	var err error
	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-level", err)
	}

	logHandler = logging.StreamHandler(os.Stdout, common.DefaultLogFormat())
	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(c, "--log-output", err)
		}
	}

	if logLevel == logging.LvlDebug {
		logHandler = logging.CallerFileHandler(logHandler)
	}

	log = logging.New("module", "main")
	common.SetLogging(log, logLevel, logHandler)

	ledger.SetLogging(logLevel, logHandler)
	registry.SetLogging(logLevel, logHandler)
	poll.SetLogging(logLevel, logHandler)
	transaction.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--network-id", fmt.Errorf("--network-id must be given"))
	}

	{
		bind := flagBindURL
		if strings.HasPrefix(bind, "https://") {
			if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
				cmdcommon.PrintFlagsError(nodeCmd, "--tls-cert", err)
			}
			if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
				cmdcommon.PrintFlagsError(nodeCmd, "--tls-key", err)
			}

			sep := "?"
			if strings.Contains(bind, "?") {
				sep = "&"
			}
			bind += sep + "TLSCertFile=" + flagTLSCertFile + "&TLSKeyFile=" + flagTLSKeyFile
		}

		if serverConfig, err = network.NewServerConfigFromString(bind); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--bind", err)
		}
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}

	conf = common.NewConfig([]byte(flagNetworkID))

	if conf.RateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, common.RateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--rate-limit-api", err)
	}

	conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	if conf.HTTPCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--http-cache-pool-size", err)
	}
	if conf.HTTPCacheRedisAddrs, err = parseFlagRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--http-cache-redis-addrs", err)
	}

	if len(flagAccessLogOutput) > 0 {
		if accessLog, err = os.OpenFile(flagAccessLogOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--access-log-output", err)
		}
	}

	parseLogging(nodeCmd)

	log.Info("Starting herehere", "version", version.ToDetailVersion())

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", conf.RateLimitRuleAPI)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-pool-size", flagHTTPCachePoolSize)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-redis-addrs", flagHTTPCacheRedisAddrs)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func runNode() {
	st, err := storage.NewLevelDBBackend(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var clock ledger.Clock = ledger.SystemClock{}
	var ntpClock *ledger.NTPClock
	if len(flagNTPServer) > 0 {
		ntpClock = ledger.NewNTPClock(flagNTPServer)
		if err := ntpClock.Sync(); err != nil {
			log.Crit("failed to query ntp server", "server", flagNTPServer, "error", err)
			os.Exit(1)
		}
		clock = ntpClock
	}

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	server := network.NewServer(serverConfig)
	if accessLog != nil {
		server.SetAccessLog(accessLog)
	}

	nr, err := runner.NewNodeRunner(ledger.New(st, clock, conf), server)
	if err != nil {
		log.Crit("failed to create node runner; `herehere genesis` may be needed", "error", err)
		os.Exit(1)
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			nr.Stop(ctx)
		})
	}
	if ntpClock != nil {
		ticker := time.NewTicker(defaultNTPSyncInterval)
		cancel := make(chan struct{})
		g.Add(func() error {
			for {
				select {
				case <-ticker.C:
					ntpClock.Sync()
				case <-cancel:
					return nil
				}
			}
		}, func(error) {
			ticker.Stop()
			close(cancel)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node stopped", "reason", err)
	}
}
