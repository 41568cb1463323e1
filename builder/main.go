package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Cores para o terminal (ANSI)
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

func main() {
	skipTests := flag.Bool("skip-tests", false, "Compilar sem rodar os testes dos pacotes de geração")
	pause := flag.Bool("pause", runtime.GOOS == "windows", "Esperar Enter antes de sair")
	flag.Parse()

	fmt.Println(ColorCyan + "╔══════════════════════════════════════╗" + ColorReset)
	fmt.Println(ColorCyan + "║     TerrainVision Native Builder     ║" + ColorReset)
	fmt.Println(ColorCyan + "╚══════════════════════════════════════╝" + ColorReset)

	start := time.Now()

	// 1. Configurar Ambiente
	setupEnvironment()

	// 2. Testar os pacotes sem janela (ruído, campo, malha, presets)
	if !*skipTests {
		if err := runTests(); err != nil {
			fatal(err, *pause)
		}
	}

	// 3. Compilar o visualizador
	output, ldflags := "cliente/terrainvision", "-s -w"
	if runtime.GOOS == "windows" {
		output, ldflags = "cliente/terrainvision.exe", "-extldflags=-static -s -w -H=windowsgui"
	}
	if err := buildComponent("VISUALIZADOR (CGO + GUI)", "cliente", output, true, ldflags); err != nil {
		fatal(err, *pause)
	}

	fmt.Printf("\n"+ColorCyan+"Build finalizada com sucesso em %v!"+ColorReset+"\n", time.Since(start).Round(time.Second))
	fmt.Printf(ColorYellow+"Dica: Execute '%s -seed 42' para um terreno reproduzível."+ColorReset+"\n", output)

	if *pause {
		fmt.Println("\nPressione Enter para sair...")
		fmt.Scanln()
	}
}

func setupEnvironment() {
	fmt.Println(ColorYellow + "\n[1/3] Configurando ambiente de compilação..." + ColorReset)

	// Adicionar MSYS2 ao PATH se estiver no Windows
	if runtime.GOOS == "windows" {
		msysPath := `C:\msys64\mingw64\bin`
		currentPath := os.Getenv("PATH")
		if !strings.Contains(currentPath, msysPath) {
			os.Setenv("PATH", msysPath+";"+currentPath)
			fmt.Printf("  - PATH atualizado: %s adicionado.\n", msysPath)
		}
		os.Setenv("CC", "gcc")
		fmt.Println("  - Compilador C: gcc (MSYS2)")
	}
}

func runTests() error {
	fmt.Println(ColorYellow + "\n[2/3] Rodando testes..." + ColorReset)

	// SQLite (presets) também precisa de CGO
	os.Setenv("CGO_ENABLED", "1")

	cmd := exec.Command("go", "test", "./shared/...", "./cliente/internal/meshing/...", "./cliente/internal/assets/...", "./cliente/internal/cli/...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("testes falharam: %v", err)
	}

	fmt.Println(ColorGreen + "  - Testes OK" + ColorReset)
	return nil
}

func buildComponent(name, dir, output string, useCgo bool, ldflags string) error {
	fmt.Printf(ColorYellow+"\n[3/3] Compilando %s..."+ColorReset+"\n", name)

	cgoValue := "0"
	if useCgo {
		cgoValue = "1"
	}
	os.Setenv("CGO_ENABLED", cgoValue)

	args := []string{"build", "-ldflags", ldflags, "-o", output, "./" + dir}
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("falha ao compilar %s: %v", name, err)
	}

	fmt.Printf(ColorGreen+"  - %s compilado com sucesso -> %s"+ColorReset+"\n", name, output)
	return nil
}

func fatal(err error, pause bool) {
	fmt.Printf("\n"+ColorRed+"[ERRO FATAL] %v"+ColorReset+"\n", err)
	if pause {
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
	}
	os.Exit(1)
}
