package manager

import (
	"WordTrie/pkg/system/sysPrint"
	"WordTrie/pkg/utils/datastructure"
	"bufio"
	"bytes"
	"errors"
	"net"
	"sync"

	"github.com/go-logr/logr"
)

const (
	defaultQueryBufferSize = 64 << 10
)

var (
	ErrUnknownCommand = sysPrint.ErrorMsg("Unknown command error.")
	ErrFailToRead     = "manager failed to read client message"
	ErrReplyClient    = sysPrint.ErrorMsg("reply to client failed.")
	ReplyOK           = []byte("OK")
)

type commandFunc func(m *Manager, c *client, args [][]byte) error

// Manager 通过 TCP 行协议对外提供一棵共享前缀树
// 前缀树本身非并发安全，由 Manager 的读写锁保护
type Manager struct {
	addr       string
	trie       *datastructure.Trie
	trieLock   sync.RWMutex
	listener   net.Listener
	clientList map[*client]struct{}
	clientLock sync.Mutex
	commandMap map[string]commandFunc
	stop       chan struct{}
	stopOnce   sync.Once
	log        logr.Logger
}

type client struct {
	conn net.Conn
}

// NewManager 创建 Manager，trie 的所有权转移给 Manager
func NewManager(addr string, trie *datastructure.Trie, log logr.Logger) *Manager {
	m := &Manager{
		addr:       addr,
		trie:       trie,
		clientList: make(map[*client]struct{}),
		commandMap: make(map[string]commandFunc),
		stop:       make(chan struct{}),
		log:        log.WithName("manager"),
	}
	m.registerCommands()
	return m
}

// registerCommand 注册命令，命令名全小写，已存在的命令不会被覆盖
func (m *Manager) registerCommand(cmdName string, cmdFunc commandFunc) {
	if _, exists := m.commandMap[cmdName]; !exists {
		m.commandMap[cmdName] = cmdFunc
	}
}

// Listen 开始监听，addr 端口为 0 时由系统分配，可通过 Addr 获取实际地址
func (m *Manager) Listen() error {
	listener, err := net.Listen("tcp", m.addr)
	if err != nil {
		return err
	}
	m.listener = listener
	m.addr = listener.Addr().String()
	return nil
}

func (m *Manager) Addr() string {
	return m.addr
}

// Serve 接受连接直到 Shutdown 被调用
func (m *Manager) Serve() error {
	if m.listener == nil {
		return sysPrint.ErrManagerClosed
	}
	sysPrint.PrintlnSystemMsg("WordTrie-Manager start listening at:" + m.addr + ", ready to accept connections.")
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			select {
			case <-m.stop:
				return nil
			default:
				if errors.Is(err, net.ErrClosed) {
					return nil
				}
				sysPrint.LogWriteErrorMsg("WordTrie-Manager accept failed: " + err.Error())
				continue
			}
		}
		cli := m.addClient(conn)
		// 在新的 goroutine 中处理连接
		go m.handleConnection(cli)
	}
}

func (m *Manager) addClient(conn net.Conn) *client {
	cli := &client{conn: conn}
	m.clientLock.Lock()
	m.clientList[cli] = struct{}{}
	m.clientLock.Unlock()
	m.log.V(1).Info("client connected", "remote", conn.RemoteAddr().String())
	return cli
}

func (m *Manager) removeClient(cli *client) {
	m.clientLock.Lock()
	delete(m.clientList, cli)
	m.clientLock.Unlock()
	cli.conn.Close()
}

func (m *Manager) clientCount() int {
	m.clientLock.Lock()
	defer m.clientLock.Unlock()
	return len(m.clientList)
}

// handleConnection 每行一条命令，每条命令回复一行
// args 指向 scanner 内部缓冲区，只在本次命令执行期间有效
func (m *Manager) handleConnection(c *client) {
	defer m.removeClient(c)
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 4096), defaultQueryBufferSize)
	for scanner.Scan() {
		args := bytes.Fields(scanner.Bytes())
		if len(args) == 0 {
			if err := c.Reply([]byte(ErrUnknownCommand.Error())); err != nil {
				return
			}
			continue
		}
		commandFunc, ok := m.commandMap[string(bytes.ToLower(args[0]))]
		if !ok {
			if err := c.Reply([]byte(ErrUnknownCommand.Error())); err != nil {
				m.log.Error(err, "reply failed", "remote", c.conn.RemoteAddr().String())
				return
			}
			continue
		}
		if err := commandFunc(m, c, args); err != nil {
			m.log.Error(err, "reply failed", "remote", c.conn.RemoteAddr().String())
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case <-m.stop:
		default:
			m.log.Error(err, ErrFailToRead, "remote", c.conn.RemoteAddr().String())
		}
	}
}

// Reply 回复一行消息
func (c *client) Reply(buf []byte) error {
	msg := make([]byte, 0, len(buf)+1)
	msg = append(msg, buf...)
	msg = append(msg, '\n')
	if _, err := c.conn.Write(msg); err != nil {
		return errors.Join(ErrReplyClient, err)
	}
	return nil
}

// Shutdown 停止监听并断开所有客户端，可重复调用
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() {
		close(m.stop)
		m.beforeExit()
	})
}

// Done 在 Shutdown 后关闭
func (m *Manager) Done() <-chan struct{} {
	return m.stop
}

func (m *Manager) beforeExit() {
	if m.listener != nil {
		m.listener.Close()
	}
	m.clientLock.Lock()
	defer m.clientLock.Unlock()
	for cli := range m.clientList {
		cli.conn.Close()
	}
}
