package governance

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/minidao/lib/common"
)

var log logging.Logger = logging.New("module", "governance")

var checkerDeferFunc = common.NewLogDeferFunc(log)

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}
