package entity_test

import (
	"testing"

	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestChatID_SymmetricAndDeterministic(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	require.Equal(t, entity.ChatID(a, b), entity.ChatID(b, a))
	require.Contains(t, entity.ChatID(a, b), a.String())
	require.Contains(t, entity.ChatID(a, b), b.String())
	require.NotEqual(t, entity.ChatID(a, b), entity.ChatID(a, uuid.New()))
}

func TestInventoryItem_UnitArithmetic(t *testing.T) {
	item := &entity.InventoryItem{
		Boxes:            decimal.RequireFromString("2"),
		UnitsPerBox:      10,
		MedicinesPerUnit: 10,
	}
	require.True(t, item.TotalUnits().Equal(decimal.NewFromInt(200)))
	require.True(t, item.UnitsPerWholeBox().Equal(decimal.NewFromInt(100)))

	// Fractional box counts left behind by fulfilment still total correctly.
	item.Boxes = decimal.RequireFromString("1.5")
	require.True(t, item.TotalUnits().Equal(decimal.NewFromInt(150)))
}

func TestFriendRequest_IsPending(t *testing.T) {
	r := &entity.FriendRequest{Status: entity.FriendRequestStatusPending}
	require.True(t, r.IsPending())
	r.Status = entity.FriendRequestStatusAccepted
	require.False(t, r.IsPending())
}

func TestProfile_IsProfessional(t *testing.T) {
	p := &entity.Profile{AccountType: entity.AccountTypeNormal}
	require.False(t, p.IsProfessional())
	p.AccountType = entity.AccountTypeDoctor
	require.True(t, p.IsProfessional())
	p.AccountType = entity.AccountTypeChemist
	require.True(t, p.IsProfessional())
}
