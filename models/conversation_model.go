package models

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type ConversationType string

const (
	ConversationDirect ConversationType = "DIRECT"
	ConversationGroup  ConversationType = "GROUP"
)

type Conversation struct {
	ID      string           `bson:"_id" json:"id"`
	Type    ConversationType `bson:"type" json:"type"`
	Members []string         `bson:"members" json:"members"`
	// PairKey is set on DIRECT conversations only and carries the unique index.
	PairKey   string    `bson:"pair_key,omitempty" json:"-"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (c *Conversation) IsDirect() bool { return c.Type == ConversationDirect }

func (c *Conversation) HasMember(userID string) bool {
	return slices.Contains(c.Members, userID)
}

// PairKey is the canonical, order-independent key of two members.
func PairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

// UniqueMembers drops empty and repeated ids, keeping first-seen order.
func UniqueMembers(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
