package datastructure

import (
	"WordTrie/pkg/system/sysPrint"
	"strconv"
)

const (
	AlphabetSize = 26
	rootIndex    = int32(0)
	noChild      = int32(0) // 根节点不会成为任何节点的子节点，0 可表示子节点不存在
)

// trieNode 前缀树节点，children 保存子节点在 arena 中的下标
type trieNode struct {
	children [AlphabetSize]int32
	isEnd    bool
}

// Trie 小写字母 a-z 前缀树
// 所有节点保存在 nodes 切片中，nodes[0] 为根节点（空前缀）
// 非并发安全，多 goroutine 共享时需由调用方加锁
// 零值可直接使用，首次 Insert 时创建根节点
type Trie struct {
	nodes []trieNode
	words int
}

// InvalidCharacterError 单词中出现了 a-z 以外的字符
type InvalidCharacterError struct {
	Word  string
	Index int  // 非法字符在 Word 中的字节偏移
	Char  rune // 非法字符
}

func (e *InvalidCharacterError) Error() string {
	return sysPrint.ErrInvalidCharacter.Error() + " word:" + strconv.Quote(e.Word) +
		" index:" + strconv.Itoa(e.Index) + " char:" + strconv.QuoteRune(e.Char)
}

func (e *InvalidCharacterError) Unwrap() error {
	return sysPrint.ErrInvalidCharacter
}

// ValidateWord 检查 word 是否只包含 a-z，空字符串合法
func ValidateWord(word string) error {
	for i, ch := range word {
		if ch < 'a' || ch > 'z' {
			return &InvalidCharacterError{Word: word, Index: i, Char: ch}
		}
	}
	return nil
}

func NewTrie() *Trie {
	return &Trie{
		nodes: make([]trieNode, 1),
	}
}

// Reset 释放所有节点，恢复为新建时的空树
func (t *Trie) Reset() {
	t.nodes = make([]trieNode, 1)
	t.words = 0
}

// Clone 深拷贝，新树与原树不共享任何节点
// 子节点下标是 arena 内的相对位置，复制整个 arena 即可
func (t *Trie) Clone() *Trie {
	nodes := make([]trieNode, len(t.nodes))
	copy(nodes, t.nodes)
	return &Trie{
		nodes: nodes,
		words: t.words,
	}
}

// Assign 将 src 深拷贝后与 t 交换内部状态（copy-and-swap），t.Assign(t) 不改变 t
func (t *Trie) Assign(src *Trie) {
	tmp := src.Clone()
	t.nodes, tmp.nodes = tmp.nodes, t.nodes
	t.words, tmp.words = tmp.words, t.words
}

// Insert 插入单词，先整体校验再修改，非法单词不会留下任何节点
func (t *Trie) Insert(word string) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	if len(t.nodes) == 0 {
		t.nodes = make([]trieNode, 1)
	}
	node := rootIndex
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		next := t.nodes[node].children[idx]
		if next == noChild {
			t.nodes = append(t.nodes, trieNode{})
			next = int32(len(t.nodes) - 1)
			t.nodes[node].children[idx] = next
		}
		node = next
	}
	if !t.nodes[node].isEnd {
		t.nodes[node].isEnd = true
		t.words++
	}
	return nil
}

// walk 沿 prefix 从根节点向下走，边不存在时返回 false
func (t *Trie) walk(prefix string) (int32, bool) {
	if len(t.nodes) == 0 {
		return noChild, false
	}
	node := rootIndex
	for i := 0; i < len(prefix); i++ {
		next := t.nodes[node].children[prefix[i]-'a']
		if next == noChild {
			return noChild, false
		}
		node = next
	}
	return node, true
}

// Contains 查询 word 是否为已插入的完整单词
func (t *Trie) Contains(word string) (bool, error) {
	if err := ValidateWord(word); err != nil {
		return false, err
	}
	node, ok := t.walk(word)
	if !ok {
		return false, nil
	}
	return t.nodes[node].isEnd, nil
}

// HasPrefix 查询是否存在以 prefix 开头的单词
func (t *Trie) HasPrefix(prefix string) (bool, error) {
	if err := ValidateWord(prefix); err != nil {
		return false, err
	}
	node, ok := t.walk(prefix)
	if !ok {
		return false, nil
	}
	if t.nodes[node].isEnd {
		return true, nil
	}
	for _, child := range t.nodes[node].children {
		if child != noChild {
			return true, nil
		}
	}
	return false, nil
}

type frame struct {
	node  int32
	depth int
	ch    byte
}

// WordsWithPrefix 返回所有以 prefix 开头的单词，按字典序升序排列
// 使用显式栈做先序遍历，子节点按 z->a 入栈，保证按 a->z 出栈
func (t *Trie) WordsWithPrefix(prefix string) ([]string, error) {
	if err := ValidateWord(prefix); err != nil {
		return nil, err
	}
	start, ok := t.walk(prefix)
	if !ok {
		return []string{}, nil
	}

	words := make([]string, 0)
	buf := []byte(prefix)
	base := len(prefix)
	stack := []frame{{node: start, depth: base}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// buf[:f.depth-1] 为父节点路径，在兄弟子树遍历过程中保持不变
		if f.depth > base {
			buf = append(buf[:f.depth-1], f.ch)
		} else {
			buf = buf[:base]
		}

		n := &t.nodes[f.node]
		if n.isEnd {
			words = append(words, string(buf))
		}
		for i := AlphabetSize - 1; i >= 0; i-- {
			if child := n.children[i]; child != noChild {
				stack = append(stack, frame{node: child, depth: f.depth + 1, ch: byte('a' + i)})
			}
		}
	}
	return words, nil
}

// CountWithPrefix 返回以 prefix 开头的单词数，只遍历节点不构造字符串
func (t *Trie) CountWithPrefix(prefix string) (int, error) {
	if err := ValidateWord(prefix); err != nil {
		return 0, err
	}
	start, ok := t.walk(prefix)
	if !ok {
		return 0, nil
	}

	count := 0
	stack := []int32{start}
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.isEnd {
			count++
		}
		for _, child := range n.children {
			if child != noChild {
				stack = append(stack, child)
			}
		}
	}
	return count, nil
}

// Words 返回树中所有单词，按字典序升序排列
func (t *Trie) Words() []string {
	words, _ := t.WordsWithPrefix("")
	return words
}

// Len 返回树中单词数
func (t *Trie) Len() int {
	return t.words
}

// NodeCount 返回节点数（含根节点）
func (t *Trie) NodeCount() int {
	return len(t.nodes)
}
