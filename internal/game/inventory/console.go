package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const menu = `

MENU
1. Add new item
2. Sell item
3. List items
4. Exit

Enter your choice: `

// Console drives an Inventory from line-oriented input, one answer per line.
type Console struct {
	inv    *Inventory
	in     *bufio.Scanner
	out    io.Writer
	symbol string
}

// NewConsole creates a Console reading answers from in and writing prompts to out.
// symbol prefixes every amount shown.
//
// Precondition: inv, in and out must be non-nil.
func NewConsole(inv *Inventory, in io.Reader, out io.Writer, symbol string) *Console {
	return &Console{inv: inv, in: bufio.NewScanner(in), out: out, symbol: symbol}
}

// Run shows the menu until the user exits or input ends. End of input is a clean exit.
//
// Postcondition: returns nil on exit or EOF; otherwise the first read or write error.
func (c *Console) Run() error {
	c.printf("Welcome to the inventory!")
	for {
		c.printf("%s", menu)
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			c.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "1":
			err = c.add()
		case "2":
			err = c.sell()
		case "3":
			c.list()
		case "4":
			return nil
		default:
			c.printf("\nInvalid choice entered")
		}
		if errors.Is(err, io.EOF) {
			c.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) add() error {
	name, err := c.askName("\nEnter item name: ")
	if err != nil {
		return err
	}
	qty, err := c.askQuantity("Enter quantity: ")
	if err != nil {
		return err
	}
	price, err := c.askPrice("Enter price: ")
	if err != nil {
		return err
	}

	_, existed, err := c.inv.Add(name, qty, price)
	if err != nil {
		c.printf("\n%v\n", err)
		return nil
	}
	if existed {
		c.printf("\nItem '%s' already exists. Quantity updated.\n", name)
	} else {
		c.printf("\nNew item '%s' added to inventory.\n", name)
	}
	return nil
}

func (c *Console) sell() error {
	if c.inv.Len() == 0 {
		c.printf("\nInventory is empty. Nothing to sell.\n")
		return nil
	}
	name, err := c.askName("\nEnter item name to sell: ")
	if err != nil {
		return err
	}
	item, ok := c.inv.Find(name)
	if !ok {
		c.printf("\nThis item is not in your Inventory.\n")
		return nil
	}
	qty, err := c.askQuantity("\nEnter number of items to sell: ")
	if err != nil {
		return err
	}

	sale, err := c.inv.Sell(name, qty)
	if errors.Is(err, ErrInsufficientQuantity) {
		c.printf("\nCannot sell more items than you have (Current: %d).\n", item.Quantity)
		return nil
	}
	if err != nil {
		c.printf("\n%v\n", err)
		return nil
	}
	c.printf("\nItems sold.")
	c.printf("\nMoney received: %s", FormatMoney(c.symbol, sale.Earned))
	if sale.Removed {
		c.printf("\nItem '%s' quantity reached zero. Removing completely.", name)
	}
	c.printf("\n")
	return nil
}

func (c *Console) list() {
	items := c.inv.Items()
	if len(items) == 0 {
		c.printf("\nInventory empty.\n")
		return
	}
	c.printf("\n--- Current Inventory ---\n")
	for _, it := range items {
		c.printf("\nItem name: %s", it.Name)
		c.printf("\nQuantity: %d", it.Quantity)
		c.printf("\nPrice: %s\n", FormatMoney(c.symbol, it.Price))
	}
	c.printf("Total Money: %s\n", FormatMoney(c.symbol, c.inv.TotalMoney()))
	c.printf("-------------------------\n")
}

// askName re-prompts until a non-blank line is read.
func (c *Console) askName(prompt string) (string, error) {
	c.printf("%s", prompt)
	for {
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		c.printf("Name must not be empty. Please enter a name: ")
	}
}

// askQuantity re-prompts until a positive integer is read.
func (c *Console) askQuantity(prompt string) (int, error) {
	c.printf("%s", prompt)
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n > 0 {
			return n, nil
		}
		c.printf("Invalid quantity. Please enter a positive number: ")
	}
}

// askPrice re-prompts until a non-negative amount is read.
func (c *Console) askPrice(prompt string) (int64, error) {
	c.printf("%s", prompt)
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if cents, err := ParseMoney(line); err == nil {
			return cents, nil
		}
		c.printf("Invalid price. Please enter a non-negative number: ")
	}
}

func (c *Console) readLine() (string, error) {
	if c.in.Scan() {
		return c.in.Text(), nil
	}
	if err := c.in.Err(); err != nil {
		return "", fmt.Errorf("inventory console: reading input: %w", err)
	}
	return "", io.EOF
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
