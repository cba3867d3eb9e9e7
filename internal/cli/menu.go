package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ethan-wit/moving-items/internal/calculator"
	"github.com/ethan-wit/moving-items/internal/models"
	"github.com/ethan-wit/moving-items/internal/service"
	"github.com/ethan-wit/moving-items/internal/storage"
)

// Action is one entry of the main menu.
type Action int

const (
	ActionCreateItem Action = iota
	ActionViewItems
	ActionViewItem
	ActionUpdateDesiredQuantity
	ActionUpdateQuantity
	ActionClearQuantities
	ActionDeleteItem
	ActionLogOff
)

// actionTokens are the exact strings the operator types, in menu order.
var actionTokens = [...]string{
	ActionCreateItem:            "input new item",
	ActionViewItems:             "view items",
	ActionViewItem:              "view item's quantity and desired quantity",
	ActionUpdateDesiredQuantity: "update item's desired quantity",
	ActionUpdateQuantity:        "update item's quantity",
	ActionClearQuantities:       "clear item quantities",
	ActionDeleteItem:            "delete item",
	ActionLogOff:                "log off",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionTokens) {
		return "unknown"
	}
	return actionTokens[a]
}

// ParseAction maps operator input to an Action.
func ParseAction(input string) (Action, bool) {
	input = strings.TrimSpace(input)
	for i, token := range actionTokens {
		if token == input {
			return Action(i), true
		}
	}
	return 0, false
}

// Menu is the main loop of a logged-in session.
type Menu struct {
	inv      *service.InventoryService
	prompt   *Prompter
	out      *Output
	handlers map[Action]func(ctx context.Context) error
}

// NewMenu creates a Menu over inv. Every action except log off has a handler.
func NewMenu(inv *service.InventoryService, prompt *Prompter, out *Output) *Menu {
	m := &Menu{inv: inv, prompt: prompt, out: out}
	m.handlers = map[Action]func(ctx context.Context) error{
		ActionCreateItem:            m.createItem,
		ActionViewItems:             m.viewItems,
		ActionViewItem:              m.viewItem,
		ActionUpdateDesiredQuantity: m.updateDesiredQuantity,
		ActionUpdateQuantity:        m.updateQuantity,
		ActionClearQuantities:       m.clearQuantities,
		ActionDeleteItem:            m.deleteItem,
	}
	return m
}

// Run shows the menu until the operator logs off or input ends.
// Operation failures are reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.showMenu()

		input, err := m.prompt.Ask("> ")
		if err != nil {
			return m.stop(ctx, err)
		}

		action, ok := ParseAction(input)
		if !ok {
			m.out.Warning("Invalid action. You must input an action from the list.")
			continue
		}
		if action == ActionLogOff {
			return m.logOff(ctx)
		}

		if err := m.handlers[action](ctx); err != nil {
			return m.stop(ctx, err)
		}
		if err := ctx.Err(); err != nil {
			return m.stop(ctx, err)
		}
	}
}

func (m *Menu) showMenu() {
	m.out.Primary("\nPlease input the action you would like to take. The options are listed below:")
	for _, token := range actionTokens {
		m.out.Muted("  %s", token)
	}
}

// stop logs off after input ends or fails. Running out of input is a normal end.
func (m *Menu) stop(ctx context.Context, cause error) error {
	logoffErr := m.logOff(ctx)
	if errors.Is(cause, io.EOF) {
		return logoffErr
	}
	return errors.Join(cause, logoffErr)
}

func (m *Menu) logOff(ctx context.Context) error {
	m.out.Info("You will now be logged off, and the program will end.")
	return m.inv.Logoff(ctx)
}

// inputError reports an unusable answer. Only read failures are returned.
func (m *Menu) inputError(err error) error {
	if errors.Is(err, errNotANumber) {
		m.out.Error("%v. No action will be taken.", err)
		return nil
	}
	return err
}

func (m *Menu) reportFailure(what, name string, err error) {
	switch {
	case errors.Is(err, storage.ErrItemNotFound):
		m.out.Error("%s is not on your list.", name)
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidItemName):
		m.out.Error("Could not %s %s: %v", what, name, err)
	default:
		m.out.Error("Could not %s %s.", what, name)
	}
}

func (m *Menu) createItem(ctx context.Context) error {
	name, err := m.prompt.AskToken("Please input the item you would like to add to your list: ")
	if err != nil {
		return err
	}
	desired, err := m.prompt.AskInt("Please input the desired quantity of this item: ")
	if err != nil {
		return m.inputError(err)
	}
	quantity, err := m.prompt.AskInt("Please input the current quantity held for this item: ")
	if err != nil {
		return m.inputError(err)
	}

	if _, err := m.inv.CreateItem(ctx, name, desired, quantity); err != nil {
		m.reportFailure("add", name, err)
		return nil
	}
	m.out.Success("%s has been added to your list", name)
	return nil
}

func (m *Menu) viewItems(ctx context.Context) error {
	items, err := m.inv.ListItems(ctx)
	if err != nil {
		m.out.Error("Could not read your items.")
		return nil
	}
	if len(items) == 0 {
		m.out.Info("Your list is empty.")
		return nil
	}
	m.out.Items(items)
	m.out.Progress(calculator.CalculateProgress(items))
	return nil
}

func (m *Menu) viewItem(ctx context.Context) error {
	name, err := m.prompt.AskToken(`Please input the item you would like to get the recorded "quantity" and "desired quantity" for: `)
	if err != nil {
		return err
	}

	item, err := m.inv.GetItem(ctx, name)
	if err != nil {
		m.reportFailure("read", name, err)
		return nil
	}
	m.out.Items([]*models.UserItem{item})
	return nil
}

func (m *Menu) updateDesiredQuantity(ctx context.Context) error {
	name, err := m.prompt.AskToken("Please input the name of the item for which you would like to change the desired quantity: ")
	if err != nil {
		return err
	}
	desired, err := m.prompt.AskInt("Please input the item's new desired quantity: ")
	if err != nil {
		return m.inputError(err)
	}

	if err := m.inv.UpdateDesiredQuantity(ctx, name, desired); err != nil {
		m.reportFailure("change desired quantity of", name, err)
		return nil
	}
	m.out.Success("Desired quantity of %s is now %d", name, desired)
	return nil
}

func (m *Menu) updateQuantity(ctx context.Context) error {
	name, err := m.prompt.AskToken("Please input the name of the item for which you would like to change the quantity: ")
	if err != nil {
		return err
	}
	quantity, err := m.prompt.AskInt("Please input the item's new quantity: ")
	if err != nil {
		return m.inputError(err)
	}

	if err := m.inv.UpdateQuantity(ctx, name, quantity); err != nil {
		m.reportFailure("change quantity of", name, err)
		return nil
	}
	m.out.Success("Quantity of %s is now %d", name, quantity)
	return nil
}

func (m *Menu) clearQuantities(ctx context.Context) error {
	confirm, err := m.prompt.Ask(`Please input "yes" if you would like to set all your item quantities to zero. Please input "no" otherwise: `)
	if err != nil {
		return err
	}

	outcome, cleared, err := m.inv.ClearQuantities(ctx, confirm)
	if err != nil {
		m.out.Error("Could not clear your item quantities.")
		return nil
	}
	switch outcome {
	case service.ClearConfirmed:
		m.out.Success("All item quantities set to zero (%d items).", cleared)
	case service.ClearDeclined:
		m.out.Info("Understood. No action will be taken.")
	default:
		m.out.Warning("Invalid input. No action will be taken.")
	}
	return nil
}

func (m *Menu) deleteItem(ctx context.Context) error {
	name, err := m.prompt.AskToken("Please input the name of the item for which you would like to delete from your list: ")
	if err != nil {
		return err
	}

	if err := m.inv.DeleteItem(ctx, name); err != nil {
		m.reportFailure("delete", name, err)
		return nil
	}
	m.out.Success("%s has been removed from your list", name)
	return nil
}
