package manager

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const (
	defaultDialTimeout = 3 * time.Second
)

// Client manager 的行协议客户端
type Client struct {
	addr   string
	conn   net.Conn
	reader *bufio.Reader
}

func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, defaultDialTimeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		addr:   addr,
		conn:   conn,
		reader: bufio.NewReaderSize(conn, defaultQueryBufferSize),
	}, nil
}

// Do 发送一条命令并返回一行回复（不含换行符）
func (c *Client) Do(command string) (string, error) {
	if _, err := io.WriteString(c.conn, command+"\n"); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "-----help-----")
	fmt.Fprintln(out, "info\t"+"show WordTrie information")
	fmt.Fprintln(out, "add [word]\t"+"insert word")
	fmt.Fprintln(out, "exists [word]\t"+"query word exists or not")
	fmt.Fprintln(out, "prefix [prefix]\t"+"list words starting with prefix")
	fmt.Fprintln(out, "count [prefix]\t"+"count words starting with prefix")
	fmt.Fprintln(out, "shutdown\t"+"shutdown manager")
	fmt.Fprintln(out, "-h / -help \t"+"display help")
	fmt.Fprintln(out, "-q / -quit \t"+"exit client")
}

// Console 交互式客户端，从 in 读取命令，结果写入 out
// 连接断开后在下一条命令前尝试重连
func Console(addr string, in io.Reader, out io.Writer) error {
	c, err := Dial(addr)
	if err != nil {
		return fmt.Errorf("connect manager error: %w", err)
	}
	defer func() {
		if c != nil {
			c.Close()
		}
	}()

	inputReader := bufio.NewReader(in)
	for {
		if c == nil {
			if c, err = Dial(addr); err != nil {
				fmt.Fprint(out, addr+"(disconnect)> ")
			} else {
				fmt.Fprint(out, addr+"> ")
			}
		} else {
			fmt.Fprint(out, addr+"> ")
		}

		input, readErr := inputReader.ReadString('\n')
		input = strings.TrimSpace(input)
		if readErr != nil && input == "" {
			return nil
		}

		switch input {
		case "":
			continue
		case "-q", "-quit":
			fmt.Fprintln(out, "Bye,Have a good day!")
			return nil
		case "-h", "-help":
			printHelp(out)
			continue
		}

		if c == nil {
			continue
		}
		reply, err := c.Do(input)
		if err != nil {
			fmt.Fprintln(out, "talk to WordTrie-Manager failed, err:", err)
			c.Close()
			c = nil
			continue
		}
		fmt.Fprintln(out, reply)
	}
}
