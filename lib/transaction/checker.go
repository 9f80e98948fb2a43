package transaction

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Conf        common.Config
	Transaction Transaction
}

func CheckOverOperationsLimit(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	if len(checker.Transaction.B.Operations) < 1 {
		return errors.TransactionEmptyOperations
	}

	limit := checker.Conf.OpsLimit
	if limit < 1 {
		limit = common.MaxOperationsInTransaction
	}
	if len(checker.Transaction.B.Operations) > limit {
		return errors.TransactionHasOverMaxOperations.Clone().SetData("limit", limit)
	}

	return nil
}

func CheckSource(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	if !keypair.IsAddress(checker.Transaction.B.Source) {
		return errors.BadPublicAddress.Clone().SetData("source", checker.Transaction.B.Source)
	}

	return nil
}

func CheckHash(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	if checker.Transaction.B.MakeHashString() != checker.Transaction.H.Hash {
		return errors.SignatureVerificationFailed.Clone().SetData("reason", "hash mismatch")
	}

	return nil
}

func CheckOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	for _, op := range checker.Transaction.B.Operations {
		if err = op.IsWellFormed(checker.Conf); err != nil {
			return
		}
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var kp keypair.KP
	if kp, err = keypair.Parse(checker.Transaction.B.Source); err != nil {
		return errors.BadPublicAddress
	}

	networkID := checker.Conf.NetworkID
	err = kp.Verify(
		append(networkID, []byte(checker.Transaction.H.Hash)...),
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		return errors.SignatureVerificationFailed
	}

	return nil
}
