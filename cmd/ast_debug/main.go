package main

import (
	"fmt"
	"os"
	"path/filepath"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/react-analyzer/internal/lang"
	"github.com/DeusData/react-analyzer/internal/parser"
)

func printAST(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Printf("%s%s %q\n", prefix, node.Kind(), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(node.Child(i), source, indent+1)
	}
}

func dump(title string, l lang.Language, source []byte) {
	fmt.Printf("=== %s ===\n", title)
	tree, err := parser.Parse(l, source)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer tree.Close()
	printAST(tree.RootNode(), source, 0)
	fmt.Println()
}

func main() {
	if len(os.Args) > 1 {
		path := os.Args[1]
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l, ok := lang.LanguageForExtension(filepath.Ext(path))
		if !ok {
			fmt.Fprintf(os.Stderr, "unsupported extension: %s\n", filepath.Ext(path))
			os.Exit(1)
		}
		dump(path, l, source)
		return
	}

	// No argument: dump the import/export forms the extractor handles.
	jsCode := []byte("import React from 'react';\nimport { useState, useEffect } from 'react';\nimport * as path from 'path';\nimport './styles.css';\n")
	dump("JS IMPORTS", lang.JavaScript, jsCode)

	tsCode := []byte("export const x = 1;\nexport default function App() {}\nexport { a as b } from './other';\nexport * from './all';\n")
	dump("TS EXPORTS", lang.TypeScript, tsCode)

	tsxCode := []byte("export const Button = () => <button title=\"ok\" />;\n")
	dump("TSX COMPONENT", lang.TSX, tsxCode)
}
