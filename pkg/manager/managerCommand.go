package manager

import (
	"WordTrie/pkg/system/sysPrint"
	"WordTrie/pkg/utils/byteStringConv"
	"strconv"
	"strings"
)

const (
	errWrongNumberArgs = sysPrint.ERROR + "wrong number of arguments"
	trueString         = "true"
	falseString        = "false"
)

// 命令参数通过 byteStringConv 零拷贝转换，前缀树不会持有传入的字符串

// execInfo info 命令
// 输入格式：Info
// 返回：words:<单词数> nodes:<节点数>
func execInfo(m *Manager, c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	m.trieLock.RLock()
	words, nodes := m.trie.Len(), m.trie.NodeCount()
	m.trieLock.RUnlock()
	return c.Reply([]byte("words:" + strconv.Itoa(words) + " nodes:" + strconv.Itoa(nodes)))
}

// execAdd 插入单词命令
// 输入格式：Add [word]
// 示例：Add cat
func execAdd(m *Manager, c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	m.trieLock.Lock()
	err := m.trie.Insert(byteStringConv.BytesToString(args[1]))
	m.trieLock.Unlock()
	if err != nil {
		return c.Reply([]byte(err.Error()))
	}
	return c.Reply(ReplyOK)
}

// execExists 查询单词是否存在命令
// 输入格式：Exists [word]
// 单词存在返回 true，否则返回 false
func execExists(m *Manager, c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	m.trieLock.RLock()
	ok, err := m.trie.Contains(byteStringConv.BytesToString(args[1]))
	m.trieLock.RUnlock()
	if err != nil {
		return c.Reply([]byte(err.Error()))
	}
	if ok {
		return c.Reply([]byte(trueString))
	}
	return c.Reply([]byte(falseString))
}

func prefixArg(args [][]byte) (string, bool) {
	switch len(args) {
	case 1:
		return "", true
	case 2:
		return byteStringConv.BytesToString(args[1]), true
	default:
		return "", false
	}
}

// execPrefix 前缀查询命令
// 输入格式：Prefix [prefix]，省略 prefix 时返回全部单词
// 返回以空格分隔、按字典序排列的单词
func execPrefix(m *Manager, c *client, args [][]byte) error {
	prefix, ok := prefixArg(args)
	if !ok {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	m.trieLock.RLock()
	words, err := m.trie.WordsWithPrefix(prefix)
	m.trieLock.RUnlock()
	if err != nil {
		return c.Reply([]byte(err.Error()))
	}
	return c.Reply(byteStringConv.StringToBytes(strings.Join(words, " ")))
}

// execCount 前缀计数命令
// 输入格式：Count [prefix]
func execCount(m *Manager, c *client, args [][]byte) error {
	prefix, ok := prefixArg(args)
	if !ok {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	m.trieLock.RLock()
	count, err := m.trie.CountWithPrefix(prefix)
	m.trieLock.RUnlock()
	if err != nil {
		return c.Reply([]byte(err.Error()))
	}
	return c.Reply([]byte(strconv.Itoa(count)))
}

// execShutdown 关闭 manager 命令
// 输入格式：Shutdown
func execShutdown(m *Manager, c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply([]byte(errWrongNumberArgs))
	}
	if err := c.Reply(ReplyOK); err != nil {
		return err
	}
	sysPrint.PrintlnAndLogWriteSystemMsg("WordTrie-Manager receive shutdown command...")
	go m.Shutdown()
	return nil
}

func (m *Manager) registerCommands() {
	m.registerCommand("info", execInfo)
	m.registerCommand("add", execAdd)
	m.registerCommand("exists", execExists)
	m.registerCommand("prefix", execPrefix)
	m.registerCommand("count", execCount)
	m.registerCommand("shutdown", execShutdown)
}
