package messaging

import "github.com/sandvall/katalog-grid/pkg/types"

type ChangeTopic string

const (
	RowsUpsertedTopic       = ChangeTopic("rows_upserted")
	RowsDeletedTopic        = ChangeTopic("rows_deleted")
	DriverValueDeletedTopic = ChangeTopic("driver_value_deleted")
	OrderChangedTopic       = ChangeTopic("order_changed")
)

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}

// RowsUpserted carries catalog rows pushed by the metadata service.
type RowsUpserted struct {
	Kind types.GridKind   `json:"kind"`
	Rows []*types.DataRow `json:"rows"`
}

type RowsDeleted struct {
	Kind types.GridKind `json:"kind"`
	Ids  []types.RowId  `json:"ids"`
}

// DriverValueDeleted announces a cascading driver value deletion. The
// grid index turns it into an affected set.
type DriverValueDeleted struct {
	Driver types.DeletedDriverKind `json:"driver"`
	Value  string                  `json:"value"`
}

// OrderChanged tells replicas that the predefined order was edited by
// another instance; carriers of the redis store reload from there.
type OrderChanged struct {
	ChangedBy string `json:"changedBy,omitempty"`
}

// ChangeHandler receives decoded change messages from the listener.
type ChangeHandler interface {
	OnRowsUpserted(change RowsUpserted)
	OnRowsDeleted(change RowsDeleted)
	OnDriverValueDeleted(change DriverValueDeleted)
	OnOrderChanged(change OrderChanged)
}
