package bank

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

type IDProvider interface {
	NextID() int64
}

type idProvider struct {
	snowflakeNode *snowflake.Node
}

func NewIDProvider(nodeID int64) (IDProvider, error) {

	node, err := snowflake.NewNode(nodeID)

	if err != nil {
		return nil, fmt.Errorf("init snowflake node failed: %w", err)
	}

	return &idProvider{
		snowflakeNode: node,
	}, nil
}

func (i *idProvider) NextID() int64 {
	return i.snowflakeNode.Generate().Int64()
}

// AccountNumberProvider generates candidate account numbers. Uniqueness is
// enforced by the users.account_number constraint, not here.
type AccountNumberProvider interface {
	NextAccountNumber() string
}

type accountNumberProvider struct{}

func NewAccountNumberProvider() AccountNumberProvider {
	return &accountNumberProvider{}
}

func (a accountNumberProvider) NextAccountNumber() string {
	n := rand.Int64N(9000000000) + 1000000000

	return strconv.FormatInt(n, 10)
}
