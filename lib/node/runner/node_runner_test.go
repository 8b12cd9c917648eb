package runner

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network"
	"boscoin.io/herehere/lib/transaction"
	"boscoin.io/herehere/lib/transaction/operation"
)

func prepareNodeRunner(t *testing.T) (*NodeRunner, *keypair.Full) {
	l, _ := ledger.NewTestLedger(time.Unix(1700000000, 0))

	owner := keypair.Random()
	_, err := transaction.MakeGenesis(l, owner.Address(), common.MustAmountFromDecimalString("1000"))
	require.NoError(t, err)

	config, err := network.NewServerConfigFromString("http://localhost:12345")
	require.NoError(t, err)

	nr, err := NewNodeRunner(l, network.NewServer(config))
	require.NoError(t, err)
	require.NoError(t, nr.Ready())

	return nr, owner
}

func TestNodeRunnerWithoutGenesis(t *testing.T) {
	l, _ := ledger.NewTestLedger(time.Unix(1700000000, 0))

	config, err := network.NewServerConfigFromString("http://localhost:12345")
	require.NoError(t, err)

	_, err = NewNodeRunner(l, network.NewServer(config))
	require.Equal(t, errors.StorageRecordDoesNotExist, err)
}

func TestNodeRunnerRoutes(t *testing.T) {
	nr, owner := prepareNodeRunner(t)

	server := httptest.NewServer(nr.Server().Handler())
	defer server.Close()

	{ // node info
		resp, err := http.Get(server.URL + "/api/v1/")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get(network.HeaderRequestID))
	}

	{ // metrics
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{ // cached account
		resp, err := http.Get(server.URL + "/api/v1/accounts/" + owner.Address())
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, resp.Header.Get("X-Cache"))

		resp, err = http.Get(server.URL + "/api/v1/accounts/" + owner.Address())
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "HIT", resp.Header.Get("X-Cache"))
	}

	{ // post transaction
		kp := keypair.Random()
		tx := transaction.TestMakeTransactionWithOperations(
			nr.Conf.NetworkID,
			owner,
			1,
			operation.MustNewOperation(operation.NewTransfer(kp.Address(), common.SettlementCurrency, common.MustAmountFromDecimalString("1"))),
		)
		body, err := tx.Serialize()
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/api/v1/transactions", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	{ // the commit purged the cache
		resp, err := http.Get(server.URL + "/api/v1/accounts/" + owner.Address())
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, resp.Header.Get("X-Cache"))
	}
}
