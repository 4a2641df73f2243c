package voice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSupplierCommand(t *testing.T) {
	intent := Parse("add supplier name Acme phone 555-1234")

	require.Equal(t, ModuleSuppliers, intent.Module)
	require.Equal(t, ActionCreate, intent.Action)
	require.True(t, intent.Ready)
	require.Empty(t, intent.Missing)
	require.Equal(t, "Acme", intent.Fields["name"])
	require.Equal(t, "555-1234", intent.Fields["phone"])
	require.Nil(t, intent.Fields["email"])
	require.Nil(t, intent.Fields["address"])
}

func TestParseSupplierMultiWordValues(t *testing.T) {
	intent := Parse("create supplier name Blue Bottle Trading email sales@bluebottle.test address 12 Harbor Road")

	require.Equal(t, ModuleSuppliers, intent.Module)
	require.True(t, intent.Ready)
	require.Equal(t, "Blue Bottle Trading", intent.Fields["name"])
	require.Equal(t, "sales@bluebottle.test", intent.Fields["email"])
	require.Equal(t, "12 Harbor Road", intent.Fields["address"])
}

func TestParseCustomerCommand(t *testing.T) {
	intent := Parse("add customer name Jane Doe phone 0812 email jane@doe.test")

	require.Equal(t, ModuleCustomers, intent.Module)
	require.True(t, intent.Ready)
	require.Equal(t, "Jane Doe", intent.Fields["name"])
	require.Equal(t, "0812", intent.Fields["phone"])
	require.Equal(t, "jane@doe.test", intent.Fields["email"])
}

func TestParseAssetNumericCoercion(t *testing.T) {
	intent := Parse("add asset name Forklift location Warehouse B purchase_cost $15,500.75 current_value $12,000")

	require.Equal(t, ModuleAssets, intent.Module)
	require.True(t, intent.Ready)
	require.Equal(t, "Forklift", intent.Fields["name"])
	require.Equal(t, "Warehouse B", intent.Fields["location"])
	require.Equal(t, 15500.75, intent.Fields["purchase_cost"])
	require.Equal(t, 12000.0, intent.Fields["current_value"])
}

func TestParseAssetJunkNumber(t *testing.T) {
	intent := Parse("add asset name Forklift current_value unknown")

	require.True(t, intent.Ready)
	require.Nil(t, intent.Fields["current_value"])
	require.Nil(t, intent.Fields["purchase_cost"])
}

func TestParseMissingName(t *testing.T) {
	intent := Parse("add supplier phone 555-1234")

	require.Equal(t, ModuleSuppliers, intent.Module)
	require.False(t, intent.Ready)
	require.True(t, intent.Missing["name"])
	require.Nil(t, intent.Fields["name"])
	require.Equal(t, "555-1234", intent.Fields["phone"])
}

func TestParseUnknownCommand(t *testing.T) {
	intent := Parse("play some jazz")

	require.Equal(t, ModuleUnknown, intent.Module)
	require.Equal(t, ActionUnknown, intent.Action)
	require.False(t, intent.Ready)
	require.True(t, intent.Missing["unknown"])
	require.Empty(t, intent.Fields)
}

func TestParseFirstTriggerWins(t *testing.T) {
	// Both trigger words appear; the supplier check runs first.
	intent := Parse("add supplier name Acme for customer Jane")
	require.Equal(t, ModuleSuppliers, intent.Module)
}

func TestParseCaseInsensitive(t *testing.T) {
	intent := Parse("ADD Supplier NAME Acme")
	require.Equal(t, ModuleSuppliers, intent.Module)
	require.Equal(t, "Acme", intent.Fields["name"])
}
