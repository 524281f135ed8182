package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Output разделяет потоки вывода CLI.
//
// Данные (таблица или JSON) идут в data, сообщения оператору идут в
// messages. Список для интерактивного выбора см. PromptWriter.
type Output struct {
	jsonMode bool
	data     io.Writer
	messages io.Writer
}

// NewOutput создаёт Output поверх stdout/stderr.
func NewOutput(jsonMode bool) *Output {
	return NewOutputTo(jsonMode, os.Stdout, os.Stderr)
}

// NewOutputTo создаёт Output с заданными потоками.
func NewOutputTo(jsonMode bool, data, messages io.Writer) *Output {
	return &Output{jsonMode: jsonMode, data: data, messages: messages}
}

// Writer возвращает поток данных.
func (o *Output) Writer() io.Writer {
	return o.data
}

// PromptWriter возвращает поток для интерактивного выбора. В режиме --json
// это поток сообщений, чтобы stdout оставался валидным JSON.
func (o *Output) PromptWriter() io.Writer {
	if o.jsonMode {
		return o.messages
	}
	return o.data
}

// Print выводит строки таблицы или jsonData в режиме --json.
func (o *Output) Print(headers []string, rows [][]string, jsonData any) error {
	if o.jsonMode {
		return o.JSON(jsonData)
	}
	return o.Table(headers, rows)
}

// Table выводит таблицу с подчёркнутыми заголовками.
func (o *Output) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(o.data, 0, 0, 2, ' ', 0)

	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len(h))
	}

	lines := append([][]string{headers, underline}, rows...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	return tw.Flush()
}

// JSON выводит v с отступом в два пробела.
func (o *Output) JSON(v any) error {
	enc := json.NewEncoder(o.data)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// Success печатает сообщение для оператора.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.messages, msg)
}

// Error печатает сообщение об ошибке, не прерывая команду.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.messages, "Error: "+msg)
}
