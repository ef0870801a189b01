package datastructure

import (
	"WordTrie/pkg/system/sysPrint"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func mustInsert(t *testing.T, trie *Trie, words ...string) {
	t.Helper()
	for _, w := range words {
		if err := trie.Insert(w); err != nil {
			t.Fatalf("insert %q: %v", w, err)
		}
	}
}

func contains(t *testing.T, trie *Trie, word string) bool {
	t.Helper()
	ok, err := trie.Contains(word)
	if err != nil {
		t.Fatalf("contains %q: %v", word, err)
	}
	return ok
}

func TestTrie(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "apple", "banana")

	g.Expect(contains(t, trie, "apple")).To(BeTrue())
	g.Expect(contains(t, trie, "banana")).To(BeTrue())
	g.Expect(contains(t, trie, "orange")).To(BeFalse())
	g.Expect(contains(t, trie, "appl")).To(BeFalse())
	g.Expect(contains(t, trie, "applelele")).To(BeFalse())

	ok, err := trie.HasPrefix("appl")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	ok, err = trie.HasPrefix("applelele")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
}

func TestWordsWithPrefixOrdering(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "cat", "car", "dog")

	g.Expect(contains(t, trie, "cat")).To(BeTrue())
	g.Expect(contains(t, trie, "ca")).To(BeFalse())

	words, err := trie.WordsWithPrefix("ca")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(Equal([]string{"car", "cat"}))

	words, err = trie.WordsWithPrefix("cat")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(Equal([]string{"cat"}))
}

func TestWordsWithPrefixNestedWords(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "ab", "a", "abc", "b", "abd", "aa", "ba")

	g.Expect(trie.Words()).To(Equal([]string{"a", "aa", "ab", "abc", "abd", "b", "ba"}))
	words, err := trie.WordsWithPrefix("ab")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(Equal([]string{"ab", "abc", "abd"}))
}

func TestWordsWithPrefixMissing(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()

	words, err := trie.WordsWithPrefix("xyz")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(BeEmpty())

	mustInsert(t, trie, "xy")
	words, err = trie.WordsWithPrefix("xyz")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(BeEmpty())
}

func TestEmptyWord(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	g.Expect(contains(t, trie, "")).To(BeFalse())

	mustInsert(t, trie, "zoo", "", "ant")
	g.Expect(contains(t, trie, "")).To(BeTrue())

	words, err := trie.WordsWithPrefix("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(Equal([]string{"", "ant", "zoo"}))
}

func TestInsertIdempotent(t *testing.T) {
	g := NewWithT(t)
	once := NewTrie()
	twice := NewTrie()
	mustInsert(t, once, "tree", "trie")
	mustInsert(t, twice, "tree", "trie", "tree", "trie")

	g.Expect(twice.Len()).To(Equal(once.Len()))
	g.Expect(twice.NodeCount()).To(Equal(once.NodeCount()))
	g.Expect(twice.Words()).To(Equal(once.Words()))
}

func TestInvalidCharacter(t *testing.T) {
	for _, word := range []string{"Cat", "ca t", "c4t", "café", "cat\r", "-"} {
		t.Run(word, func(t *testing.T) {
			g := NewWithT(t)
			trie := NewTrie()
			mustInsert(t, trie, "cat")
			nodes := trie.NodeCount()

			err := trie.Insert(word)
			g.Expect(errors.Is(err, sysPrint.ErrInvalidCharacter)).To(BeTrue())
			var invalid *InvalidCharacterError
			g.Expect(errors.As(err, &invalid)).To(BeTrue())
			g.Expect(invalid.Word).To(Equal(word))
			g.Expect(trie.NodeCount()).To(Equal(nodes))
			g.Expect(trie.Len()).To(Equal(1))

			_, err = trie.Contains(word)
			g.Expect(err).To(MatchError(sysPrint.ErrInvalidCharacter))
			_, err = trie.WordsWithPrefix(word)
			g.Expect(err).To(MatchError(sysPrint.ErrInvalidCharacter))
			_, err = trie.HasPrefix(word)
			g.Expect(err).To(MatchError(sysPrint.ErrInvalidCharacter))
		})
	}
}

func TestInvalidCharacterPosition(t *testing.T) {
	g := NewWithT(t)
	err := ValidateWord("abCd")
	var invalid *InvalidCharacterError
	g.Expect(errors.As(err, &invalid)).To(BeTrue())
	g.Expect(invalid.Index).To(Equal(2))
	g.Expect(invalid.Char).To(Equal('C'))
	g.Expect(ValidateWord("")).To(Succeed())
}

func TestResetReleasesWords(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "egg", "chicken")
	trie.Reset()
	mustInsert(t, trie, "dog")

	g.Expect(contains(t, trie, "egg")).To(BeFalse())
	g.Expect(contains(t, trie, "chicken")).To(BeFalse())
	g.Expect(contains(t, trie, "dog")).To(BeTrue())
	g.Expect(trie.Len()).To(Equal(1))
	g.Expect(trie.NodeCount()).To(Equal(4))
}

func TestCloneIndependence(t *testing.T) {
	g := NewWithT(t)
	first := NewTrie()
	mustInsert(t, first, "dog")

	second := first.Clone()
	third := first.Clone()
	mustInsert(t, second, "cat")

	g.Expect(contains(t, first, "cat")).To(BeFalse())
	g.Expect(contains(t, third, "cat")).To(BeFalse())
	g.Expect(contains(t, second, "cat")).To(BeTrue())
	g.Expect(contains(t, second, "dog")).To(BeTrue())

	mustInsert(t, first, "do")
	g.Expect(contains(t, second, "do")).To(BeFalse())
	g.Expect(contains(t, third, "do")).To(BeFalse())
}

func TestAssign(t *testing.T) {
	g := NewWithT(t)
	first := NewTrie()
	mustInsert(t, first, "dog")
	second := first.Clone()
	mustInsert(t, second, "cat")
	third := first.Clone()

	third.Assign(second)
	g.Expect(contains(t, third, "cat")).To(BeTrue())

	mustInsert(t, third, "bird")
	g.Expect(contains(t, first, "bird")).To(BeFalse())
	g.Expect(contains(t, second, "bird")).To(BeFalse())
	g.Expect(contains(t, third, "bird")).To(BeTrue())
	g.Expect(second.Words()).To(Equal([]string{"cat", "dog"}))
}

func TestAssignSelf(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "self", "assign")
	before := trie.Words()

	trie.Assign(trie)
	g.Expect(trie.Words()).To(Equal(before))
	g.Expect(trie.Len()).To(Equal(2))
}

func TestZeroValue(t *testing.T) {
	g := NewWithT(t)
	var trie Trie
	g.Expect(contains(t, &trie, "")).To(BeFalse())
	g.Expect(trie.Words()).To(BeEmpty())

	mustInsert(t, &trie, "zero")
	g.Expect(contains(t, &trie, "zero")).To(BeTrue())
}

func randomWord(r *rand.Rand, alphabet string, maxLen int) string {
	n := r.Intn(maxLen + 1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

// 随机单词集合与暴力筛选结果对比，字母表取 "abc" 以增加公共前缀
func TestRandomAgainstReference(t *testing.T) {
	g := NewWithT(t)
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		trie := NewTrie()
		set := make(map[string]struct{})
		for i := 0; i < 200; i++ {
			w := randomWord(r, "abc", 6)
			set[w] = struct{}{}
			mustInsert(t, trie, w)
		}
		sorted := make([]string, 0, len(set))
		for w := range set {
			sorted = append(sorted, w)
		}
		sort.Strings(sorted)

		g.Expect(trie.Len()).To(Equal(len(set)))
		for w := range set {
			g.Expect(contains(t, trie, w)).To(BeTrue(), "word %q", w)
		}

		for i := 0; i < 100; i++ {
			q := randomWord(r, "abcd", 4)
			_, stored := set[q]
			g.Expect(contains(t, trie, q)).To(Equal(stored), "query %q", q)

			expected := make([]string, 0)
			for _, w := range sorted {
				if strings.HasPrefix(w, q) {
					expected = append(expected, w)
				}
			}
			words, err := trie.WordsWithPrefix(q)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(words).To(Equal(expected), "prefix %q", q)
			g.Expect(sort.StringsAreSorted(words)).To(BeTrue())
			count, err := trie.CountWithPrefix(q)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(count).To(Equal(len(expected)), "count %q", q)
		}
	}
}

func TestCountWithPrefix(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	mustInsert(t, trie, "", "car", "cart", "cat", "dog")
	nodes := trie.NodeCount()

	for prefix, expected := range map[string]int{
		"":      5,
		"c":     3,
		"car":   2,
		"cart":  1,
		"carts": 0,
		"x":     0,
	} {
		count, err := trie.CountWithPrefix(prefix)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(expected), "prefix %q", prefix)
	}

	count, err := trie.CountWithPrefix("Ca")
	g.Expect(errors.Is(err, sysPrint.ErrInvalidCharacter)).To(BeTrue())
	g.Expect(count).To(BeZero())
	g.Expect(trie.NodeCount()).To(Equal(nodes))

	var empty Trie
	count, err = empty.CountWithPrefix("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(count).To(BeZero())
}

func TestLongWordDoesNotRecurse(t *testing.T) {
	g := NewWithT(t)
	trie := NewTrie()
	long := strings.Repeat("z", 200000)
	mustInsert(t, trie, long)

	g.Expect(contains(t, trie, long)).To(BeTrue())
	words, err := trie.WordsWithPrefix("zzz")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(words).To(HaveLen(1))
	g.Expect(trie.Clone().Len()).To(Equal(1))
}
