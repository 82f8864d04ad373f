package main

import (
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mr-martian/ap-ud-linearize/storage/sqlite/zombiezen"
)

// Pool opens the score database once per run, on first use.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}
	err := p.p.Close()
	p.p = nil
	return err
}
