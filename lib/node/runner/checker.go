package runner

import (
	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/transaction"
)

var DefaultSubmitTransactionCheckerFuncs = []common.CheckerFunc{
	TransactionWellFormed,
	TransactionNotApplied,
	TransactionSequenceID,
}

type TransactionChecker struct {
	common.DefaultChecker

	NodeRunner  *NodeRunner
	Transaction transaction.Transaction
}

func TransactionWellFormed(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	return checker.Transaction.IsWellFormed(checker.NodeRunner.Conf())
}

func TransactionNotApplied(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)

	exists, err := block.ExistsBlockTransaction(checker.NodeRunner.Storage(), checker.Transaction.GetHash())
	if err != nil {
		return err
	}
	if exists {
		return errors.TransactionAlreadyExists.Clone().SetData("hash", checker.Transaction.GetHash())
	}

	return nil
}

// TransactionSequenceID checks the sequence id of transaction is the same
// with the source account; the unknown source starts from 0.
func TransactionSequenceID(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	st := checker.NodeRunner.Storage()
	source := checker.Transaction.Source()

	var expected uint64
	exists, err := block.ExistsBlockAccount(st, source)
	if err != nil {
		return err
	}
	if exists {
		ba, err := block.GetBlockAccount(st, source)
		if err != nil {
			return err
		}
		expected = ba.SequenceID
	}

	if !checker.Transaction.IsValidSequenceID(expected) {
		return errors.TransactionInvalidSequenceID.Clone().SetData("expected", expected)
	}

	return nil
}
