package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/runa-lang/runa"
	"github.com/runa-lang/runa/ast"
)

var astOutputFormat string

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a Runa file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readSource(args[0])
		if err != nil {
			fatal(err)
		}
		name := displayName(args[0])
		program, err := runa.Parse(text, runa.WithFilename(name))
		if err != nil {
			printDiagnostics(err, name, text)
			os.Exit(1)
		}
		switch strings.ToLower(astOutputFormat) {
		case "json":
			out, err := getOutputJSON(nodeToTree(program))
			if err != nil {
				fatal(err)
			}
			fmt.Println(string(out))
		case "", "text":
			printAST(program)
		default:
			fatal(fmt.Sprintf("unknown output format: %s", astOutputFormat))
		}
	},
}

func init() {
	astCmd.Flags().StringVar(&astOutputFormat, "output", "", "Set the output format (json, text)")
	astCmd.RegisterFlagCompletionFunc("output",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
		})
	rootCmd.AddCommand(astCmd)
}

// ASTNode is one node of the tree shared by the JSON and text output.
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeToTree(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}

	typeName := reflect.TypeOf(node).Elem().Name()
	result := &ASTNode{Type: typeName}

	appendChild := func(child ast.Node) {
		if tree := nodeToTree(child); tree != nil {
			result.Children = append(result.Children, tree)
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		result.Value = n.ModuleName
		for _, t := range n.Toplevels {
			appendChild(t)
		}

	case *ast.Name:
		result.Value = n.Name

	case *ast.Int:
		result.Value = n.Value

	case *ast.Float:
		result.Value = n.Value

	case *ast.Bool:
		result.Value = n.Value

	case *ast.String:
		result.Value = n.Value

	case *ast.Dot:
		result.Value = n.Sel
		appendChild(n.X)

	case *ast.Unop:
		result.Value = string(n.Op)
		appendChild(n.X)

	case *ast.Binop:
		result.Value = string(n.Op)
		appendChild(n.X)
		appendChild(n.Y)

	case *ast.Cast:
		result.Value = n.Type.String()
		appendChild(n.X)

	case *ast.CallMethod:
		result.Value = n.Method
		appendChild(n.X)
		for _, arg := range n.Args {
			appendChild(arg)
		}

	case *ast.If:
		result.Children = append(result.Children, &ASTNode{
			Type:     "Condition",
			Children: treeList(n.Cond),
		})
		result.Children = append(result.Children, &ASTNode{
			Type:     "Then",
			Children: stmtTrees(n.Then),
		})
		if n.Else != nil {
			result.Children = append(result.Children, &ASTNode{
				Type:     "Else",
				Children: stmtTrees(n.Else),
			})
		}

	case *ast.FuncStat:
		if n.Module != "" {
			result.Value = n.Module + "." + n.Name
		} else {
			result.Value = n.Name
		}
		for _, p := range n.Params {
			appendChild(p)
		}
		for _, rt := range n.RetTypes {
			appendChild(rt)
		}
		for _, s := range n.Body {
			appendChild(s)
		}

	case *ast.Decl:
		result.Value = n.Name
		if n.Type != nil {
			appendChild(n.Type)
		}

	case *ast.RecordField:
		result.Value = n.Name
		appendChild(n.Type)

	case *ast.Typealias:
		result.Value = n.Name
		appendChild(n.Alias)

	case *ast.Record:
		result.Value = n.Name
		for _, f := range n.Fields {
			appendChild(f)
		}

	case *ast.NameType:
		result.Value = n.Name

	default:
		// Walk the struct fields for child nodes
		v := reflect.ValueOf(node).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanInterface() {
				continue
			}
			if child, ok := field.Interface().(ast.Node); ok && child != nil {
				appendChild(child)
			}
			if field.Kind() == reflect.Slice {
				for j := 0; j < field.Len(); j++ {
					if child, ok := field.Index(j).Interface().(ast.Node); ok && child != nil {
						appendChild(child)
					}
				}
			}
		}
	}

	return result
}

func treeList(nodes ...ast.Node) []*ASTNode {
	var out []*ASTNode
	for _, n := range nodes {
		if tree := nodeToTree(n); tree != nil {
			out = append(out, tree)
		}
	}
	return out
}

func stmtTrees(stmts []ast.Stmt) []*ASTNode {
	var out []*ASTNode
	for _, s := range stmts {
		if tree := nodeToTree(s); tree != nil {
			out = append(out, tree)
		}
	}
	return out
}

// Color styles for the text tree. The fatih/color package disables them
// itself when stdout is not a terminal or NO_COLOR is set.
var (
	nodeColor  = color.New(color.FgCyan, color.Bold)
	valueColor = color.New(color.FgYellow)
	treeColor  = color.New(color.FgHiBlack)
)

func printAST(program *ast.Program) {
	root := nodeToTree(program)
	fmt.Println(nodeColor.Sprint(root.Type) + " " + valueColor.Sprint(formatTreeValue(root.Value)))
	for i, child := range root.Children {
		printTree(child, "", i == len(root.Children)-1)
	}
}

func printTree(n *ASTNode, prefix string, isLast bool) {
	connector := "├─ "
	childPrefix := prefix + "│  "
	if isLast {
		connector = "└─ "
		childPrefix = prefix + "   "
	}
	line := treeColor.Sprint(prefix+connector) + nodeColor.Sprint(n.Type)
	if n.Value != nil {
		line += " " + valueColor.Sprint(formatTreeValue(n.Value))
	}
	fmt.Println(line)
	for i, child := range n.Children {
		printTree(child, childPrefix, i == len(n.Children)-1)
	}
}

func formatTreeValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
