package driver

import (
	"WordTrie/pkg/system/sysPrint"
	"WordTrie/pkg/utils/datastructure"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
)

const (
	MsgWordFound       = "Word found"
	MsgWordNotFound    = "Word not found"
	MsgNoWordFile      = "Unable to open word file"
	MsgNoQueriesFile   = "Unable to open queries file"
	MsgUsage           = "Requires 2 text files as arguments: Words and Queries"
	maxLineSize        = 16 << 20
	initialLineBufSize = 64 << 10
)

// QueryResult 单个查询的结果
type QueryResult struct {
	Query string
	Found bool
	Words []string // 以 Query 为前缀的单词，字典序
}

// Driver 读取单词列表构建前缀树，并对查询列表逐行输出查询结果
type Driver struct {
	trie *datastructure.Trie
	fs   afero.Fs
	out  io.Writer
	log  logr.Logger
}

func NewDriver(fs afero.Fs, out io.Writer, log logr.Logger) *Driver {
	return &Driver{
		trie: datastructure.NewTrie(),
		fs:   fs,
		out:  out,
		log:  log.WithName("driver"),
	}
}

func (d *Driver) Trie() *datastructure.Trie {
	return d.trie
}

// Run 依次加载单词与执行查询，输入文件打不开时打印提示后继续
func (d *Driver) Run(wordPath, queryPath string) error {
	if _, err := d.LoadWords(wordPath); err != nil && !isMissingInput(err) {
		return err
	}
	if err := d.RunQueries(queryPath); err != nil && !isMissingInput(err) {
		return err
	}
	return nil
}

// LoadWords 将 path 中每行作为一个单词插入前缀树，非法单词记录日志后跳过
// 返回成功插入的行数
func (d *Driver) LoadWords(path string) (int, error) {
	inserted := 0
	err := d.forEachLine(path, func(lineNo int, line string) error {
		if err := d.trie.Insert(line); err != nil {
			d.log.Error(err, "skipping word", "file", path, "line", lineNo)
			return nil
		}
		inserted++
		return nil
	})
	if isMissingInput(err) {
		d.println(MsgNoWordFile)
		d.log.Error(err, "word list unavailable", "file", path)
		return 0, err
	}
	if err != nil {
		return inserted, err
	}
	d.log.V(1).Info("word list loaded", "file", path, "inserted", inserted, "words", d.trie.Len())
	return inserted, nil
}

// RunQueries 对 path 中每行执行查询并输出结果
func (d *Driver) RunQueries(path string) error {
	err := d.forEachLine(path, func(lineNo int, line string) error {
		return WriteQueryResult(d.out, d.Query(line))
	})
	if isMissingInput(err) {
		d.println(MsgNoQueriesFile)
		d.log.Error(err, "query list unavailable", "file", path)
	}
	return err
}

// Query 查询单词是否存在以及以其为前缀的单词
// 含非法字符的查询不可能被存储，按未找到处理
func (d *Driver) Query(q string) QueryResult {
	notFound := QueryResult{Query: q, Words: []string{}}
	found, err := d.trie.Contains(q)
	if err != nil {
		d.log.Error(err, "invalid query")
		return notFound
	}
	words, err := d.trie.WordsWithPrefix(q)
	if err != nil {
		d.log.Error(err, "invalid query")
		return notFound
	}
	return QueryResult{Query: q, Found: found, Words: words}
}

// WriteQueryResult 输出格式：
//
//	Checking <query>:
//	Word found / Word not found
//	<word1> <word2> ...
func WriteQueryResult(w io.Writer, r QueryResult) error {
	var b strings.Builder
	b.WriteString("Checking " + r.Query + ":\n")
	if r.Found {
		b.WriteString(MsgWordFound + "\n")
	} else {
		b.WriteString(MsgWordNotFound + "\n")
	}
	b.WriteString(strings.Join(r.Words, " ") + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (d *Driver) println(msg string) {
	if _, err := io.WriteString(d.out, msg+"\n"); err != nil {
		sysPrint.PrintlnErrorMsg(err.Error())
	}
}

func (d *Driver) forEachLine(path string, fn func(lineNo int, line string) error) error {
	file, err := d.fs.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", sysPrint.ErrMissingInput, path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, initialLineBufSize), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err = fn(lineNo, strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func isMissingInput(err error) bool {
	return errors.Is(err, sysPrint.ErrMissingInput)
}
