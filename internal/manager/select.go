package manager

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shaiso/dpctl/internal/domain"
)

// SelectPrompt — приглашение к вводу номера pipeline.
const SelectPrompt = "Select a pipeline number to activate: "

// PrintPipelines выводит нумерованный (с 1) список pipeline.
func (m *Manager) PrintPipelines(w io.Writer) {
	fmt.Fprintln(w, "Available pipelines:")
	for i, p := range m.pipelines {
		fmt.Fprintf(w, "%d. %s (ID: %s)\n", i+1, p.Name, p.ID)
	}
}

// SelectInteractively выводит список pipeline в out, читает одну строку
// из in и возвращает pipeline с введённым номером.
//
// Нечисловой ввод, номер вне диапазона или конец ввода дают false и
// сообщение для оператора. Повторного запроса нет.
func (m *Manager) SelectInteractively(in io.Reader, out io.Writer) (domain.Descriptor, bool) {
	m.PrintPipelines(out)
	fmt.Fprint(out, SelectPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No input received.")
		return domain.Descriptor{}, false
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(out, "Invalid input. Please enter a number.")
		return domain.Descriptor{}, false
	}

	if choice < 1 || choice > len(m.pipelines) {
		fmt.Fprintln(out, "Invalid selection. Please choose a valid pipeline number.")
		return domain.Descriptor{}, false
	}

	return m.pipelines[choice-1].Clone(), true
}
