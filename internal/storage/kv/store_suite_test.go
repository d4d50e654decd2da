package kv

import (
	"context"
	"errors"

	"github.com/stretchr/testify/suite"
)

// storeSuite checks the Store contract; each backend test supplies a fresh,
// empty store per test.
type storeSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
	ctx      context.Context
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
	s.Require().NoError(s.store.Clear(s.ctx))
}

func (s *storeSuite) TestGetAbsent() {
	v, err := s.store.Get(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(v)
}

func (s *storeSuite) TestSetGetOverwrite() {
	s.Require().NoError(s.store.Set(s.ctx, "coupon", []byte(`"SAVE10"`)))
	s.Require().NoError(s.store.Set(s.ctx, "coupon", []byte(`"SAVE20"`)))

	v, err := s.store.Get(s.ctx, "coupon")
	s.Require().NoError(err)
	s.Equal(`"SAVE20"`, string(v))
}

func (s *storeSuite) TestDeleteIsIdempotent() {
	s.Require().NoError(s.store.Set(s.ctx, "auth", []byte(`{}`)))
	s.Require().NoError(s.store.Delete(s.ctx, "auth"))
	s.Require().NoError(s.store.Delete(s.ctx, "auth"))

	v, err := s.store.Get(s.ctx, "auth")
	s.Require().NoError(err)
	s.Nil(v)
}

func (s *storeSuite) TestListAndClear() {
	s.Require().NoError(s.store.Set(s.ctx, "cart_guest", []byte(`[]`)))
	s.Require().NoError(s.store.Set(s.ctx, "wishlist_guest", []byte(`["p1"]`)))

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string][]byte{
		"cart_guest":     []byte(`[]`),
		"wishlist_guest": []byte(`["p1"]`),
	}, all)

	s.Require().NoError(s.store.Clear(s.ctx))
	all, err = s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *storeSuite) TestAtomicCommits() {
	s.Require().NoError(s.store.Set(s.ctx, "cart_guest", []byte(`[{"id":"p1","qty":1}]`)))

	err := s.store.Atomic(s.ctx, func(ctx context.Context, tx Store) error {
		v, err := tx.Get(ctx, "cart_guest")
		if err != nil {
			return err
		}
		if err := tx.Set(ctx, "cart_alice@example.com", v); err != nil {
			return err
		}
		if err := tx.Delete(ctx, "cart_guest"); err != nil {
			return err
		}

		// reads inside the unit see its own writes
		moved, err := tx.Get(ctx, "cart_alice@example.com")
		s.Require().NoError(err)
		s.Equal(v, moved)
		gone, err := tx.Get(ctx, "cart_guest")
		s.Require().NoError(err)
		s.Nil(gone)
		return nil
	})
	s.Require().NoError(err)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string][]byte{"cart_alice@example.com": []byte(`[{"id":"p1","qty":1}]`)}, all)
}

func (s *storeSuite) TestAtomicRollsBackOnError() {
	s.Require().NoError(s.store.Set(s.ctx, "auth", []byte(`{"token":"t"}`)))
	boom := errors.New("boom")

	err := s.store.Atomic(s.ctx, func(ctx context.Context, tx Store) error {
		s.Require().NoError(tx.Delete(ctx, "auth"))
		s.Require().NoError(tx.Set(ctx, "cart_guest", []byte(`[]`)))
		return boom
	})
	s.ErrorIs(err, boom)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string][]byte{"auth": []byte(`{"token":"t"}`)}, all)
}

func (s *storeSuite) TestNestedAtomicJoinsOuter() {
	boom := errors.New("boom")

	err := s.store.Atomic(s.ctx, func(ctx context.Context, tx Store) error {
		err := tx.Atomic(ctx, func(ctx context.Context, inner Store) error {
			return inner.Set(ctx, "coupon", []byte(`"SAVE5"`))
		})
		s.Require().NoError(err)

		v, err := tx.Get(ctx, "coupon")
		s.Require().NoError(err)
		s.Equal(`"SAVE5"`, string(v))
		return boom
	})
	s.ErrorIs(err, boom)

	v, err := s.store.Get(s.ctx, "coupon")
	s.Require().NoError(err)
	s.Nil(v, "inner writes roll back with the outer unit")
}

func (s *storeSuite) TestClearInsideAtomic() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte(`1`)))
	s.Require().NoError(s.store.Set(s.ctx, "b", []byte(`2`)))

	err := s.store.Atomic(s.ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Clear(ctx); err != nil {
			return err
		}
		return tx.Set(ctx, "c", []byte(`3`))
	})
	s.Require().NoError(err)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string][]byte{"c": []byte(`3`)}, all)
}
