package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/cache"
	"boscoin.io/minidao/lib/common"
	liberrors "boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network"
	"boscoin.io/minidao/lib/node/runner"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/version"
)

const (
	defaultNetwork  string      = "https"
	defaultPort     int         = 12345
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo
)

var (
	flagNetworkID      string = common.GetENVValue("MINIDAO_NETWORK_ID", "")
	flagLogLevel       string = common.GetENVValue("MINIDAO_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = common.GetENVValue("MINIDAO_LOG_OUTPUT", "")
	flagEndpointString string = common.GetENVValue(
		"MINIDAO_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("MINIDAO_TLS_CERT", "minidao.crt")
	flagTLSKeyFile          string = common.GetENVValue("MINIDAO_TLS_KEY", "minidao.key")
	flagBlockTime           string = common.GetENVValue("MINIDAO_BLOCK_TIME", "5s")
	flagTxsLimit            string = common.GetENVValue("MINIDAO_TXS_LIMIT", "1000")
	flagRateLimitAPI        string = common.GetENVValue("MINIDAO_RATE_LIMIT_API", common.RateLimitAPI.Formatted)
	flagProposalCache       string = common.GetENVValue("MINIDAO_PROPOSAL_CACHE", common.ProposalCacheAdapterMem)
	flagGenesis             cmdcommon.ListFlags
)

var (
	nodeCmd *cobra.Command

	nodeEndpoint  *url.URL
	storageConfig *storage.Config
	conf          common.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run minidao node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			// `--genesis` creates the genesis block before starting the
			// node, unless it is already created
			if len(flagGenesis) > 0 {
				flagName, err := MakeGenesisBlock(flagGenesis, flagStorageConfigString)
				if liberrors.Code(err) == liberrors.BlockAlreadyExists.Code {
					log.Warn("genesis block already exists; --genesis is ignored")
				} else if len(flagName) != 0 || err != nil {
					cmdcommon.PrintFlagsError(c, "--genesis", err)
				}
			}

			if err := runNode(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	if currentDirectory, err := os.Getwd(); err == nil {
		if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
			flagStorageConfigString = fmt.Sprintf("file://%s/db", currentDirectory)
		}
	}
	flagStorageConfigString = common.GetENVValue("MINIDAO_STORAGE", flagStorageConfigString)

	nodeCmd.Flags().Var(&flagGenesis, "genesis", "creates the genesis block before running node; <address>[,balance]")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagBlockTime, "block-time", flagBlockTime, "block time")
	nodeCmd.Flags().StringVar(&flagTxsLimit, "txs-limit", flagTxsLimit, "transactions limit in a block; 0 is unlimited")
	nodeCmd.Flags().StringVar(&flagRateLimitAPI, "rate-limit-api", flagRateLimitAPI, "rate limit of api per client ip, '<limit>-<period>'; 0 is unlimited")
	nodeCmd.Flags().StringVar(&flagProposalCache, "proposal-cache", flagProposalCache, "proposal cache, {mem, redis://<addr>[,<addr>...], none}")

	rootCmd.AddCommand(nodeCmd)
}

func parseRateLimitRule(s string) (common.RateLimitRule, error) {
	if s == "0" || len(s) < 1 {
		return common.RateLimitRule{}, nil
	}

	rate, err := limiter.NewRateFromFormatted(s)
	if err != nil {
		return common.RateLimitRule{}, err
	}

	return common.NewRateLimitRule(rate), nil
}

// parseProposalCache sets the cache adapter of the config; the redis
// addresses make the shards of the ring.
func parseProposalCache(s string, c *common.Config) error {
	switch {
	case s == "none":
		c.ProposalCacheAdapter = ""
	case s == common.ProposalCacheAdapterMem:
		c.ProposalCacheAdapter = common.ProposalCacheAdapterMem
	case strings.HasPrefix(s, common.ProposalCacheAdapterRedis+"://"):
		addrs := strings.Split(strings.TrimPrefix(s, common.ProposalCacheAdapterRedis+"://"), ",")
		c.ProposalCacheAdapter = common.ProposalCacheAdapterRedis
		c.ProposalCacheRedisAddrs = map[string]string{}
		for i, addr := range addrs {
			if len(addr) < 1 {
				return errors.Errorf("empty redis address: %q", s)
			}
			c.ProposalCacheRedisAddrs[fmt.Sprintf("shard%d", i)] = addr
		}
	default:
		return errors.Errorf("unknown proposal cache: %q", s)
	}

	return nil
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--network-id", errors.New("--network-id must be given"))
	}

	if nodeEndpoint, err = url.Parse(flagEndpointString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--endpoint", err)
	}

	if strings.ToLower(nodeEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-key", err)
		}

		queries := nodeEndpoint.Query()
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
		nodeEndpoint.RawQuery = queries.Encode()
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}

	conf = common.NewConfig([]byte(flagNetworkID))

	if conf.BlockTime, err = time.ParseDuration(flagBlockTime); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--block-time", err)
	} else if conf.BlockTime <= 0 {
		cmdcommon.PrintFlagsError(nodeCmd, "--block-time", errors.New("must be positive"))
	}

	if _, err = fmt.Sscanf(flagTxsLimit, "%d", &conf.TxsLimit); err != nil || conf.TxsLimit < 0 {
		cmdcommon.PrintFlagsError(nodeCmd, "--txs-limit", errors.Errorf("invalid limit: %q", flagTxsLimit))
	}

	if conf.RateLimitRuleAPI, err = parseRateLimitRule(flagRateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--rate-limit-api", err)
	}

	if err = parseProposalCache(flagProposalCache, &conf); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--proposal-cache", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	logHandler = common.DefaultLogHandler
	if len(flagLogOutput) > 0 {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	common.SetLogging(logLevel, logHandler)
	block.SetLogging(logLevel, logHandler)
	cache.SetLogging(logLevel, logHandler)
	governance.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)

	log.Info("Starting minidao", "version", version.ToDetailVersion())

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tendpoint", nodeEndpoint.String())
	parsedFlags = append(parsedFlags, "\n\tstorage", storageConfig.String())
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tblock-time", conf.BlockTime)
	parsedFlags = append(parsedFlags, "\n\ttxs-limit", conf.TxsLimit)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", conf.RateLimitRuleAPI.String())
	parsedFlags = append(parsedFlags, "\n\tproposal-cache", flagProposalCache)
	parsedFlags = append(parsedFlags, "\n\tgenesis", flagGenesis.String())

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() error {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return errors.Wrap(err, "failed to initialize storage")
	}
	defer st.Close()

	nr, err := runner.NewNodeRunner(st, conf)
	if err != nil {
		if liberrors.Code(err) == liberrors.BlockNotFound.Code {
			return errors.New("genesis block is not found; run `minidao genesis` or `minidao node --genesis`")
		}
		return err
	}
	nr.SetEndpoint(nodeEndpoint.Scheme + "://" + nodeEndpoint.Host)

	serverConfig, err := network.NewServerConfigFromEndpoint(nodeEndpoint)
	if err != nil {
		return err
	}

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	server, err := network.NewServer(serverConfig, nr.Ready())
	if err != nil {
		return err
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
			nr.Stop()
		})
	}
	{
		g.Add(func() error {
			return server.Start()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Stop(ctx)
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

	return g.Run()
}
