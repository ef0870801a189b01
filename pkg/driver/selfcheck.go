package driver

import (
	"WordTrie/pkg/system/sysPrint"
	"WordTrie/pkg/utils/datastructure"
	"fmt"
)

type expectation struct {
	name  string
	trie  *datastructure.Trie
	word  string
	found bool
}

func checkAll(stage string, exps ...expectation) error {
	for _, e := range exps {
		ok, err := e.trie.Contains(e.word)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", sysPrint.ErrSelfCheckFailed, stage, err)
		}
		if ok != e.found {
			return fmt.Errorf("%w: %s: %s contains %q = %v, expect %v",
				sysPrint.ErrSelfCheckFailed, stage, e.name, e.word, ok, e.found)
		}
	}
	return nil
}

func insertAll(trie *datastructure.Trie, words ...string) error {
	for _, w := range words {
		if err := trie.Insert(w); err != nil {
			return fmt.Errorf("%w: %v", sysPrint.ErrSelfCheckFailed, err)
		}
	}
	return nil
}

// SelfCheck 检查前缀树的值语义：重置、深拷贝、赋值
//
//	first  (重置后): dog
//	second (拷贝 first 后插入 cat): dog cat
//	third  (赋值为 second 后插入 bird): dog cat bird
func SelfCheck() error {
	first := datastructure.NewTrie()
	if err := insertAll(first, "egg", "chicken"); err != nil {
		return err
	}
	first.Reset()
	if err := insertAll(first, "dog"); err != nil {
		return err
	}
	if err := checkAll("reset",
		expectation{"first", first, "egg", false},
		expectation{"first", first, "chicken", false},
		expectation{"first", first, "dog", true},
	); err != nil {
		return err
	}

	second := first.Clone()
	third := first.Clone()
	if err := insertAll(second, "cat"); err != nil {
		return err
	}
	if err := checkAll("clone",
		expectation{"first", first, "cat", false},
		expectation{"third", third, "cat", false},
		expectation{"second", second, "cat", true},
	); err != nil {
		return err
	}

	third.Assign(second)
	if err := checkAll("assign", expectation{"third", third, "cat", true}); err != nil {
		return err
	}
	if err := insertAll(third, "bird"); err != nil {
		return err
	}
	return checkAll("assign independence",
		expectation{"first", first, "bird", false},
		expectation{"second", second, "bird", false},
		expectation{"third", third, "bird", true},
	)
}
